package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/PritamP20/Streamer.fun/internal/log"
)

type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	WebSocket WebSocketConfig
	Stream    StreamConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Log       log.Config
}

type ServerConfig struct {
	Host string
	Port int
}

type CORSConfig struct {
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

// StreamConfig controls how long a stopped stream's descriptor stays
// queryable and how often the sweep runs.
type StreamConfig struct {
	Retention    time.Duration `mapstructure:"retention"`
	ReapInterval time.Duration `mapstructure:"reap_interval"`
}

// RedisConfig configures the market-event subscriber. Disabled unless
// market_events.enabled is set.
type RedisConfig struct {
	Address             string `mapstructure:"address"`
	Password            string `mapstructure:"password"`
	DB                  int    `mapstructure:"db"`
	MarketEventsEnabled bool   `mapstructure:"market_events_enabled"`
	MarketEventsChannel string `mapstructure:"market_events_channel"`
}

// KafkaConfig configures the chat audit producer. Disabled unless
// audit.enabled is set.
type KafkaConfig struct {
	Brokers      string `mapstructure:"brokers"`
	Topic        string `mapstructure:"topic"`
	Partitions   int    `mapstructure:"partitions"`
	AuditEnabled bool   `mapstructure:"audit_enabled"`
}

func Load() (*Config, error) {
	v, err := read("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 4001)
	v.SetDefault("cors.allowed_origin", "*")
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 65536)
	v.SetDefault("stream.retention", "5m")
	v.SetDefault("stream.reap_interval", "5m")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.market_events_enabled", false)
	v.SetDefault("redis.market_events_channel", "market:events")
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.topic", "chat-audit")
	v.SetDefault("kafka.partitions", 4)
	v.SetDefault("kafka.audit_enabled", false)
	v.SetDefault("log.level", "info")

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("cors.allowed_origin", "SOCKET_CORS_ORIGIN")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.market_events_enabled", "MARKET_EVENTS_ENABLED")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.topic", "KAFKA_AUDIT_TOPIC")
	v.BindEnv("kafka.audit_enabled", "CHAT_AUDIT_ENABLED")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse durations
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)
	cfg.Stream.Retention = parseDuration(v, "stream.retention", 5*time.Minute)
	cfg.Stream.ReapInterval = parseDuration(v, "stream.reap_interval", 5*time.Minute)

	return &cfg, nil
}

// read loads configuration from file and environment variables.
// configPath is the directory containing config files.
func read(configPath, configName string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil // Config file not found, rely on env vars
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return v, nil
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	str := v.GetString(key)
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}
