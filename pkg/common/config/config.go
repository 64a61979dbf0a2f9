package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	// PolicyPermissive 任何请求者都可以编辑或删除任意营地
	PolicyPermissive = "permissive"
	// PolicyOwner 仅允许已登录的所有者编辑或删除
	PolicyOwner = "owner"

	defaultSecretKey = "dev-secret-change-me-in-production"
)

type ServerConfig struct {
	Address string `json:"address" env:"SERVER_ADDR"`
}

type SecurityConfig struct {
	MaxBodySize    int64    `json:"maxBodySize" env:"MAX_BODY_SIZE"` // 字节
	AllowedMethods []string `json:"allowedMethods" env:"ALLOWED_METHODS" envSeparator:","`
}

type TimeoutConfig struct {
	RequestTimeout int `json:"requestTimeout" env:"REQUEST_TIMEOUT"` // 秒
}

type CORSConfig struct {
	AllowOrigins     []string      `json:"allowOrigins" env:"CORS_ALLOW_ORIGINS" envSeparator:","`
	AllowMethods     []string      `json:"allowMethods"`
	AllowHeaders     []string      `json:"allowHeaders"`
	ExposeHeaders    []string      `json:"exposeHeaders"`
	AllowCredentials bool          `json:"allowCredentials"`
	MaxAge           time.Duration `json:"maxAge"`
	TrustedDomains   []string      `json:"trustedDomains" env:"CORS_TRUSTED_DOMAINS" envSeparator:","`
}

type RateLimitConfig struct {
	Rate     int           `json:"rate" env:"RATE_LIMIT"` // 0 表示关闭限流
	Interval time.Duration `json:"interval" env:"RATE_INTERVAL"`
}

type MiddlewareConfig struct {
	Security  SecurityConfig  `json:"security"`
	Timeout   TimeoutConfig   `json:"timeout"`
	CORS      CORSConfig      `json:"cors"`
	RateLimit RateLimitConfig `json:"rateLimit"`
}

// SessionConfig 签名会话 Cookie 配置
type SessionConfig struct {
	SecretKey  string        `json:"secretKey" env:"SECRET_KEY"`
	CookieName string        `json:"cookieName" env:"SESSION_COOKIE"`
	MaxAge     time.Duration `json:"maxAge" env:"SESSION_MAX_AGE"`
	Secure     bool          `json:"secure" env:"SESSION_SECURE"`
	Issuer     string        `json:"issuer"`
	HashCost   int           `json:"hashCost" env:"BCRYPT_COST"` // 0 表示 bcrypt.DefaultCost
}

type DatabaseConfig struct {
	URL         string `json:"url" env:"DATABASE_URL"`
	MinPoolSize int    `json:"minPoolSize" env:"DB_MIN_POOL"`
	MaxPoolSize int    `json:"maxPoolSize" env:"DB_MAX_POOL"`
	LogLevel    string `json:"logLevel" env:"DB_LOG_LEVEL"` // silent、error、warn、info
}

type PolicyConfig struct {
	Ownership string `json:"ownership" env:"OWNERSHIP_POLICY"`
}

type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	Session    SessionConfig    `json:"session"`
	Middleware MiddlewareConfig `json:"middleware"`
	Policy     PolicyConfig     `json:"policy"`
	LogLevel   string           `json:"logLevel" env:"LOG_LEVEL"`
	Env        string           `json:"env" env:"APP_ENV"`
}

var defaultConfig = Config{
	Server: ServerConfig{
		Address: ":8080",
	},
	Database: DatabaseConfig{
		URL:         "sqlite://yelpcamp.db",
		MinPoolSize: 5,
		MaxPoolSize: 50,
		LogLevel:    "warn",
	},
	Session: SessionConfig{
		SecretKey:  defaultSecretKey,
		CookieName: "session",
		MaxAge:     24 * time.Hour,
		Issuer:     "yelpcamp",
	},
	Middleware: MiddlewareConfig{
		Security: SecurityConfig{
			MaxBodySize:    10 << 20, // 10MB
			AllowedMethods: []string{"GET", "HEAD", "POST", "OPTIONS"},
		},
		Timeout: TimeoutConfig{
			RequestTimeout: 15,
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:8080"},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Rate:     20,
			Interval: time.Second,
		},
	},
	Policy: PolicyConfig{
		Ownership: PolicyPermissive,
	},
	LogLevel: "info",
	Env:      "development",
}

// Default 返回内置默认配置的副本
func Default() *Config {
	cfg := defaultConfig
	cfg.Middleware.Security.AllowedMethods = append([]string(nil), defaultConfig.Middleware.Security.AllowedMethods...)
	cfg.Middleware.CORS.AllowOrigins = append([]string(nil), defaultConfig.Middleware.CORS.AllowOrigins...)
	cfg.Middleware.CORS.AllowMethods = append([]string(nil), defaultConfig.Middleware.CORS.AllowMethods...)
	cfg.Middleware.CORS.AllowHeaders = append([]string(nil), defaultConfig.Middleware.CORS.AllowHeaders...)
	cfg.Middleware.CORS.ExposeHeaders = append([]string(nil), defaultConfig.Middleware.CORS.ExposeHeaders...)
	return &cfg
}

// IsProd 是否运行在生产环境
func (c *Config) IsProd() bool {
	return c.Env == "production"
}

// OwnerOnly 编辑与删除是否要求所有者会话
func (c *Config) OwnerOnly() bool {
	return c.Policy.Ownership == PolicyOwner
}

// Load 加载配置，优先级：环境变量 > 配置文件 > 默认值
func Load() *Config {
	config := Default()

	if configPath := getConfigPath(); configPath != "" {
		if err := loadFromFile(config, configPath); err != nil {
			hlog.Warnf("Failed to load config file %s: %v", configPath, err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		hlog.Warnf("Failed to parse environment: %v", err)
	}

	return config
}

// Validate 校验配置，不合法时拒绝启动
func (c *Config) Validate() error {
	var errs []error
	if c.Session.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY must be set"))
	}
	if c.IsProd() && c.Session.SecretKey == defaultSecretKey {
		errs = append(errs, errors.New("SECRET_KEY must be changed in production"))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL must be set"))
	}
	switch c.Policy.Ownership {
	case PolicyPermissive, PolicyOwner:
	default:
		errs = append(errs, fmt.Errorf("unknown ownership policy %q", c.Policy.Ownership))
	}
	return errors.Join(errs...)
}

func getConfigPath() string {
	if path := os.Getenv("APP_CONFIG"); path != "" {
		return path
	}

	searchPaths := []string{
		"./config.json",
		"../config.json",
		"/etc/yelpcamp/config.json",
	}
	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

func loadFromFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, config)
}

func loadFromEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return err
	}
	config.Policy.Ownership = strings.ToLower(strings.TrimSpace(config.Policy.Ownership))
	config.Database.LogLevel = strings.ToLower(config.Database.LogLevel)
	return nil
}

// HlogLevel 将配置的日志级别映射到 hlog
func (c *Config) HlogLevel() hlog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "trace":
		return hlog.LevelTrace
	case "debug":
		return hlog.LevelDebug
	case "warn":
		return hlog.LevelWarn
	case "error":
		return hlog.LevelError
	default:
		return hlog.LevelInfo
	}
}
