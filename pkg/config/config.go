package config

import "time"

// APIGateway definition api_gateway YAML structure
type APIGateway struct {
	Port              string        `mapstructure:"port"`
	UserService       ServiceConfig `mapstructure:"user"`
	ChatService       ServiceConfig `mapstructure:"chat"`
	FriendshipService ServiceConfig `mapstructure:"friendship"`
	ProxyTimeout      time.Duration `mapstructure:"proxy_timeout"`
}

// User definition user_service YAML structure
type User struct {
	Port       string        `mapstructure:"port"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`

	PostgreSQL DatabaseConfig `mapstructure:"pg"`
	RedisUser  RedisConfig    `mapstructure:"redis"`
	Admin      AdminConfig    `mapstructure:"admin"`
}

// AdminConfig seed admin account
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// Chat definition chat_service YAML structure
type Chat struct {
	Port     string         `mapstructure:"port"`
	MongoSQL DatabaseConfig `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Realtime RealtimeConfig `mapstructure:"realtime"`
}

// RealtimeConfig websocket tuning
type RealtimeConfig struct {
	// SendQueue 每個連線的待送事件上限, 滿了就斷線
	SendQueue int `mapstructure:"send_queue"`
	// PingPeriodSecond server ping 間隔
	PingPeriodSecond int `mapstructure:"ping_period"`
}

// Friendship definition friendship_service YAML structure
type Friendship struct {
	Port        string         `mapstructure:"port"`
	MongoSQL    DatabaseConfig `mapstructure:"mongo"`
	Redis       RedisConfig    `mapstructure:"redis"`
	KafKa       KafkaConfig    `mapstructure:"kafka"`
	UserService ServiceConfig  `mapstructure:"user"`
}

// PostEventDemo definition post_event_demo YAML structure
type PostEventDemo struct {
	KafKa KafkaConfig `mapstructure:"kafka"`
}

// ServiceConfig definition service port & name
type ServiceConfig struct {
	Port string `mapstructure:"service_port"`
	Name string `mapstructure:"service_name"`
}

// URL return http base url of the service
func (s ServiceConfig) URL() string {
	return "http://" + s.Name + ":" + s.Port
}

// RedisConfig definition redis setting
type RedisConfig struct {
	RedisDB int `mapstructure:"redis_db"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// MinIOConfig definition minio setting
type MinIOConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	BucketName    string        `mapstructure:"bucket"`
	UseSSL        bool          `mapstructure:"use_ssl"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	RetryCount    int           `mapstructure:"retry_count"`
}

// KafkaConfig definition kafka setting
type KafkaConfig struct {
	Brokers       []string      `mapstructure:"brokers"`
	Topic         string        `mapstructure:"topic"`
	GroupID       string        `mapstructure:"group_id"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	RetryCount    int           `mapstructure:"retry_count"`
}
