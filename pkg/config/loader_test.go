package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig_ExpandEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
port: "8082"
mongo:
  host: ${TEST_MONGO_HOST}
  port: 27017
  database: chat
  retry_count: 3
redis:
  redis_db: 2
realtime:
  send_queue: 32
  ping_period: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chat_test.yaml"), []byte(yaml), 0644))
	t.Setenv("TEST_MONGO_HOST", "mongo-1")

	cfg, err := ReadConfig[Chat]("chat_test", dir)
	require.NoError(t, err)

	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, "mongo-1", cfg.MongoSQL.Host)
	assert.Equal(t, 27017, cfg.MongoSQL.Port)
	assert.Equal(t, 3, cfg.MongoSQL.RetryCount)
	assert.Equal(t, 2, cfg.Redis.RedisDB)
	assert.Equal(t, 32, cfg.Realtime.SendQueue)
}

func TestReadConfig_MissingFile(t *testing.T) {
	_, err := ReadConfig[Chat]("nope", t.TempDir())
	assert.Error(t, err)
}

func TestGetRedisSetting(t *testing.T) {
	t.Setenv("REDIS_SENTINEL1_IP", "10.0.0.1")
	t.Setenv("REDIS_SENTINEL1_PORT", "26379")
	t.Setenv("REDIS_SENTINEL2_IP", "10.0.0.2")
	t.Setenv("REDIS_SENTINEL2_PORT", "26380")
	t.Setenv("REDIS_MASTER_NAME", "")

	master, addrs := GetRedisSetting()
	sort.Strings(addrs)

	assert.Equal(t, "mymaster", master)
	assert.Contains(t, addrs, "10.0.0.1:26379")
	assert.Contains(t, addrs, "10.0.0.2:26380")
}

func TestServiceConfigURL(t *testing.T) {
	s := ServiceConfig{Name: "chat_service", Port: "8082"}
	assert.Equal(t, "http://chat_service:8082", s.URL())
}
