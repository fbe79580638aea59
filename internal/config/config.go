package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Share     ShareConfig     `mapstructure:"share"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ShareConfig 分享链接与访问控制相关配置
type ShareConfig struct {
	Secret             string `mapstructure:"secret"`               // API 共享密钥，为空则不校验
	BaseDomain         string `mapstructure:"base_domain"`          // 分享链接的公网域名
	SigningSecret      string `mapstructure:"signing_secret"`       // 仪表盘链接签名密钥，为空则发明文链接
	BootstrapTeacherID string `mapstructure:"bootstrap_teacher_id"` // 启动时预创建的管理员教师标识
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("MATH_TUTOR")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Share
	viper.BindEnv("share.secret", "SHARE_SECRET")
	viper.BindEnv("share.base_domain", "BASE_DOMAIN")
	viper.BindEnv("share.signing_secret", "SIGNING_SECRET")
	viper.BindEnv("share.bootstrap_teacher_id", "BOOTSTRAP_TEACHER_ID")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "3000"
	}
	if cfg.Share.BaseDomain == "" {
		cfg.Share.BaseDomain = fmt.Sprintf("http://localhost:%s", cfg.Server.Port)
	}

	// 生产环境必须配置共享密钥
	if cfg.Server.Mode == "release" && cfg.Share.Secret == "" {
		return nil, fmt.Errorf("share secret must be configured in release mode")
	}

	return &cfg, nil
}
