// Package config 负责加载和管理应用程序的配置。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
// 启动时构建一次，并通过构造函数传入各个组件。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Seed     SeedConfig     `mapstructure:"seed"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	Mode         string `mapstructure:"mode"`
	WebOrigin    string `mapstructure:"web_origin"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

// ChatConfig 存储对话流程的限制参数。
type ChatConfig struct {
	MaxHistoryMessages int `mapstructure:"max_history_messages"`
	MaxMessageChars    int `mapstructure:"max_message_chars"`
	// IdempotencyTTLHours 控制重试去重记录在 Redis 中的保留时间。
	IdempotencyTTLHours int `mapstructure:"idempotency_ttl_hours"`
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	// Driver 取值 memory / mysql / postgres。
	Driver string      `mapstructure:"driver"`
	DSN    string      `mapstructure:"dsn"`
	Redis  RedisConfig `mapstructure:"redis"`
}

// RedisConfig 存储 Redis 的配置。Addr 为空时不启用 Redis。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// LLMConfig 存储大语言模型相关的配置。
type LLMConfig struct {
	// Provider 取值 openai / ark。
	Provider   string              `mapstructure:"provider"`
	APIKey     string              `mapstructure:"api_key"`
	BaseURL    string              `mapstructure:"base_url"`
	Model      string              `mapstructure:"model"`
	ArkBaseURL string              `mapstructure:"ark_base_url"`
	Region     string              `mapstructure:"region"`
	TimeoutMS  int                 `mapstructure:"timeout_ms"`
	Generation LLMGenerationConfig `mapstructure:"generation"`
}

// LLMGenerationConfig 配置生成相关参数。
type LLMGenerationConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// Enabled 表示是否提供了访问模型所需的凭证。
func (c LLMConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Timeout 返回单次模型调用的超时时间。
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// KafkaConfig 存储 Kafka 相关的配置。Brokers 为空时不发布事件。
type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

// MinIOConfig 存储 MinIO 对象存储的配置。
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// SeedConfig 描述 FAQ 初始数据的来源。
type SeedConfig struct {
	OnStartup bool `mapstructure:"on_startup"`
	// Source 取值 builtin / file / minio。
	Source string `mapstructure:"source"`
	// Path 为本地文件路径或 MinIO 对象名。
	Path string `mapstructure:"path"`
}

// JWTConfig 存储 JWT 相关的配置。
type JWTConfig struct {
	Secret                 string `mapstructure:"secret"`
	AccessTokenExpireHours int    `mapstructure:"access_token_expire_hours"`
}

// AdminConfig 存储管理员账号。PasswordHash 为 bcrypt 哈希。
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

// AdminEnabled 表示管理接口是否可用。
func (c Config) AdminEnabled() bool {
	return c.Admin.Username != "" && c.Admin.PasswordHash != "" && c.JWT.Secret != ""
}

// 与原有部署保持一致的环境变量名。
var envBindings = map[string][]string{
	"server.port":                    {"PORT"},
	"server.mode":                    {"GIN_MODE"},
	"server.web_origin":              {"WEB_ORIGIN"},
	"server.max_body_bytes":          {"MAX_BODY_BYTES"},
	"chat.max_history_messages":      {"MAX_HISTORY_MESSAGES"},
	"chat.max_message_chars":         {"MAX_MESSAGE_CHARS"},
	"chat.idempotency_ttl_hours":     {"IDEMPOTENCY_TTL_HOURS"},
	"database.driver":                {"DATABASE_DRIVER"},
	"database.dsn":                   {"DATABASE_URL"},
	"database.redis.addr":            {"REDIS_ADDR"},
	"database.redis.password":        {"REDIS_PASSWORD"},
	"database.redis.db":              {"REDIS_DB"},
	"log.level":                      {"LOG_LEVEL"},
	"log.format":                     {"LOG_FORMAT"},
	"log.output_path":                {"LOG_OUTPUT_PATH"},
	"llm.provider":                   {"LLM_PROVIDER"},
	"llm.api_key":                    {"OPENAI_API_KEY", "ARK_API_KEY"},
	"llm.base_url":                   {"OPENAI_BASE_URL"},
	"llm.model":                      {"OPENAI_MODEL", "ARK_MODEL"},
	"llm.ark_base_url":               {"ARK_BASE_URL"},
	"llm.region":                     {"ARK_REGION"},
	"llm.timeout_ms":                 {"LLM_TIMEOUT_MS"},
	"llm.generation.temperature":     {"LLM_TEMPERATURE"},
	"llm.generation.max_tokens":      {"LLM_MAX_TOKENS"},
	"kafka.brokers":                  {"KAFKA_BROKERS"},
	"kafka.topic":                    {"KAFKA_TOPIC"},
	"minio.endpoint":                 {"MINIO_ENDPOINT"},
	"minio.access_key_id":            {"MINIO_ACCESS_KEY_ID"},
	"minio.secret_access_key":        {"MINIO_SECRET_ACCESS_KEY"},
	"minio.use_ssl":                  {"MINIO_USE_SSL"},
	"minio.bucket_name":              {"MINIO_BUCKET"},
	"seed.on_startup":                {"SEED_ON_STARTUP"},
	"seed.source":                    {"SEED_SOURCE"},
	"seed.path":                      {"SEED_PATH"},
	"jwt.secret":                     {"JWT_SECRET"},
	"jwt.access_token_expire_hours":  {"JWT_EXPIRE_HOURS"},
	"admin.username":                 {"ADMIN_USERNAME"},
	"admin.password_hash":            {"ADMIN_PASSWORD_HASH"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.web_origin", "http://localhost:5173")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("chat.max_history_messages", 18)
	v.SetDefault("chat.max_message_chars", 2000)
	v.SetDefault("chat.idempotency_ttl_hours", 24)
	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.redis.addr", "")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_path", "")
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.ark_base_url", "https://ark.cn-beijing.volces.com/api/v3")
	v.SetDefault("llm.region", "cn-beijing")
	v.SetDefault("llm.timeout_ms", 15000)
	v.SetDefault("llm.generation.temperature", 0.3)
	v.SetDefault("llm.generation.max_tokens", 300)
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "chat-replies")
	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key_id", "")
	v.SetDefault("minio.secret_access_key", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket_name", "faq-seed")
	v.SetDefault("seed.on_startup", true)
	v.SetDefault("seed.source", "builtin")
	v.SetDefault("seed.path", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_token_expire_hours", 12)
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password_hash", "")
}

// Load 读取配置：默认值 < YAML 文件 < 环境变量。
// configPath 指向的文件不存在时仅使用默认值与环境变量。
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("绑定环境变量失败 %s: %w", key, err)
		}
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法将配置解析到结构体中: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Chat.MaxHistoryMessages < 1:
		return fmt.Errorf("invalid chat.max_history_messages %d: must be positive", c.Chat.MaxHistoryMessages)
	case c.Chat.MaxMessageChars < 1:
		return fmt.Errorf("invalid chat.max_message_chars %d: must be positive", c.Chat.MaxMessageChars)
	case c.LLM.TimeoutMS < 1:
		return fmt.Errorf("invalid llm.timeout_ms %d: must be positive", c.LLM.TimeoutMS)
	case c.Server.MaxBodyBytes < 1:
		return fmt.Errorf("invalid server.max_body_bytes %d: must be positive", c.Server.MaxBodyBytes)
	}
	switch c.Database.Driver {
	case "memory", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Database.Driver != "memory" && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for driver %q", c.Database.Driver)
	}
	switch c.LLM.Provider {
	case "openai", "ark":
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}
	switch c.Seed.Source {
	case "builtin", "file", "minio":
	default:
		return fmt.Errorf("unsupported seed.source %q", c.Seed.Source)
	}
	return nil
}
