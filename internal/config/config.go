package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig selects the photo store backend once at startup.
// Driver "local" writes under LocalRoot and serves through /api/uploads;
// driver "s3" writes to an S3-compatible endpoint via the minio client.
// LocalEnabled is the capability flag for read-only deployment targets:
// when false the local driver refuses writes with STORAGE_UNAVAILABLE.
type StorageConfig struct {
	Driver       string
	LocalRoot    string
	LocalEnabled bool
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	UseSSL       bool
	Region       string
}

// AIConfig configures the vision model call. An empty APIKey is a valid
// deployment state; analysis requests then fail with MODEL_UNAVAILABLE
// instead of blocking startup.
type AIConfig struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
	Timeout         time.Duration
}

type SecurityConfig struct {
	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTAccessTTL     time.Duration
	JWTRefreshTTL    time.Duration
	MaxSessions      int
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	AI               AIConfig
	Security         SecurityConfig
	AllowCORSOrigins []string
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("APEXFIT")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "30s")
	v.SetDefault("http.writetimeout", "90s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.localroot", ".apexfit-uploads")
	v.SetDefault("storage.localenabled", true)
	v.SetDefault("storage.bucket", "apexfit-photos")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.maxoutputtokens", 2000)
	v.SetDefault("ai.timeout", "60s")

	v.SetDefault("security.jwtaccessttl", "15m")
	v.SetDefault("security.jwtrefreshttl", "720h") // 30 days
	v.SetDefault("security.maxsessions", 10)
}
