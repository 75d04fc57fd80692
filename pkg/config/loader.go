package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvInfo 集合服務名稱, yaml 與 log 路徑 from .env
type EnvInfo struct {
	// service name (同時是 yaml 檔名)
	APIGateway        string
	UserService       string
	ChatService       string
	FriendshipService string
	PostEventDemo     string

	// service yaml path
	APIGatewayYAMLPath        string
	UserServiceYAMLPath       string
	ChatServiceYAMLPath       string
	FriendshipServiceYAMLPath string
	PostEventDemoYAMLPath     string

	// service log path
	APIGatewayLogPath        string
	UserServiceLogPath       string
	ChatServiceLogPath       string
	FriendshipServiceLogPath string
	PostEventDemoLogPath     string

	// JWTSecret 簽 token 用, 各服務共用
	JWTSecret string
}

// EnvConfig 集合服務設定
var (
	EnvConfig = initEnv()
	envConfig EnvInfo
	once      sync.Once
	env       string
)

func initEnv() EnvInfo {
	once.Do(func() {
		path, err := GetPath(".env", 5)
		if err != nil {
			log.Printf("Warning: Could not get .env path: %v", err)
		}

		if err := godotenv.Load(path); err != nil {
			log.Printf("Warning: Could not load .env file: %v", err)
		}

		env = os.Getenv("ENV")

		envConfig = EnvInfo{
			APIGateway:        getEnv("API_GATEWAY", "api_gateway"),
			UserService:       getEnv("USER_SERVICE", "user_service"),
			ChatService:       getEnv("CHAT_SERVICE", "chat_service"),
			FriendshipService: getEnv("FRIENDSHIP_SERVICE", "friendship_service"),
			PostEventDemo:     getEnv("POST_EVENT_DEMO", "post_event_demo"),

			APIGatewayYAMLPath:        getEnv("API_GATEWAY_YAML", "./deploy/config"),
			UserServiceYAMLPath:       getEnv("USER_SERVICE_YAML", "./deploy/config"),
			ChatServiceYAMLPath:       getEnv("CHAT_SERVICE_YAML", "./deploy/config"),
			FriendshipServiceYAMLPath: getEnv("FRIENDSHIP_SERVICE_YAML", "./deploy/config"),
			PostEventDemoYAMLPath:     getEnv("POST_EVENT_DEMO_YAML", "./deploy/config"),

			APIGatewayLogPath:        getEnv("API_GATEWAY_LOG", "./log/api_gateway"),
			UserServiceLogPath:       getEnv("USER_SERVICE_LOG", "./log/user_service"),
			ChatServiceLogPath:       getEnv("CHAT_SERVICE_LOG", "./log/chat_service"),
			FriendshipServiceLogPath: getEnv("FRIENDSHIP_SERVICE_LOG", "./log/friendship_service"),
			PostEventDemoLogPath:     getEnv("POST_EVENT_DEMO_LOG", "./log/post_event_demo"),

			JWTSecret: os.Getenv("JWT_SECRET"),
		}
	})

	return envConfig
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IsProduction check run env
func IsProduction() bool {
	return env == "production"
}

// IsLocal check run env
func IsLocal() bool {
	return env == "local"
}

// LoadConfig 加載配置
func LoadConfig[T any](serviceName string, configPath string) T {
	cfg, err := ReadConfig[T](serviceName, configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	return cfg
}

// ReadConfig 讀取 <configPath>/<serviceName>.yaml, ${} 佔位符以環境變數替換
func ReadConfig[T any](serviceName string, configPath string) (T, error) {
	var cfg T

	v := viper.New()
	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	// 自動讀取環境變數
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	rawConfig, err := os.ReadFile(v.ConfigFileUsed())
	if err != nil {
		return cfg, fmt.Errorf("read raw config file: %w", err)
	}

	// 替換 ${} 占位符為環境變數的值
	expandedConfig := os.ExpandEnv(string(rawConfig))
	if err := v.ReadConfig(bytes.NewBufferString(expandedConfig)); err != nil {
		return cfg, fmt.Errorf("read expanded config: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// GetRedisSetting get redis sentinel setting from .env
func GetRedisSetting() (string, []string) {
	var (
		masterName    string
		sentinelAddrs []string
	)

	// 动态解析 REDIS_SENTINEL*_IP 和端口
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := parts[0], parts[1]

		if strings.HasPrefix(key, "REDIS_SENTINEL") && strings.HasSuffix(key, "_IP") {
			portKey := strings.Replace(key, "_IP", "_PORT", 1)
			if port := os.Getenv(portKey); port != "" {
				sentinelAddrs = append(sentinelAddrs, fmt.Sprintf("%s:%s", value, port))
			}
		}
	}

	masterName = os.Getenv("REDIS_MASTER_NAME")
	if masterName == "" {
		masterName = "mymaster"
	}

	return masterName, sentinelAddrs
}

// GetPath use fileName loop maxCount find file path
func GetPath(fileName string, maxCount int) (string, error) {
	path := "./" + fileName

	for i := 0; i < maxCount; i++ {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		path = "../" + path
	}
	return "", errors.New(fileName + " can't find path")
}
