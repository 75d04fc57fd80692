package database

import (
	"fmt"
	"net/url"
	"time"

	"social_network_service/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
)

// Connection definition sql setting
type Connection struct {
	ConnectStr string

	RetryCount    int
	RetryInterval time.Duration
}

// MongoDB definition mongo db
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// MinIOConnection definition minio
type MinIOConnection struct {
	Endpoint   string
	User       string
	Password   string
	BucketName string
	UseSSL     bool

	RetryCount    int
	RetryInterval time.Duration
}

// KafkaConnection definition kafka
type KafkaConnection struct {
	Brokers       []string
	Topic         string
	GroupID       string
	RetryCount    int
	RetryInterval time.Duration
}

// MongoConnection build mongo connect string from yaml
func MongoConnection(c config.DatabaseConfig) Connection {
	u := url.URL{Scheme: "mongodb", Host: fmt.Sprintf("%s:%d", c.Host, c.Port)}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return Connection{
		ConnectStr:    u.String(),
		RetryCount:    c.RetryCount,
		RetryInterval: time.Duration(c.RetryInterval) * time.Second,
	}
}

// PostgresConnection build postgres connect string from yaml
func PostgresConnection(c config.DatabaseConfig) Connection {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=disable",
	}
	return Connection{
		ConnectStr:    u.String(),
		RetryCount:    c.RetryCount,
		RetryInterval: time.Duration(c.RetryInterval) * time.Second,
	}
}

// NewMinIOSetting convert yaml setting
func NewMinIOSetting(c config.MinIOConfig) MinIOConnection {
	return MinIOConnection{
		Endpoint:      fmt.Sprintf("%s:%d", c.Host, c.Port),
		User:          c.User,
		Password:      c.Password,
		BucketName:    c.BucketName,
		UseSSL:        c.UseSSL,
		RetryCount:    c.RetryCount,
		RetryInterval: c.RetryInterval,
	}
}

// NewKafkaSetting convert yaml setting
func NewKafkaSetting(c config.KafkaConfig) KafkaConnection {
	return KafkaConnection{
		Brokers:       c.Brokers,
		Topic:         c.Topic,
		GroupID:       c.GroupID,
		RetryCount:    c.RetryCount,
		RetryInterval: c.RetryInterval,
	}
}
