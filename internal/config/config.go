// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	LLM       LLMConfig       `mapstructure:"llm"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Assistant AssistantConfig `mapstructure:"assistant"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 存储所有数据库连接的配置。
// MySQL 的 DSN 为空时，用户数据退化为进程内存储（重启即丢失）。
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig 存储 MySQL 数据库的配置。
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 存储 Redis 的配置。Addr 为空时限流退化为进程内窗口计数。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig 存储 JWT 相关的配置。Secret 没有默认值，必须显式配置。
type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	TokenExpireDays int    `mapstructure:"token_expire_days"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// LLMConfig 存储生成式 AI 服务相关的配置。
type LLMConfig struct {
	APIKey     string              `mapstructure:"api_key"`
	BaseURL    string              `mapstructure:"base_url"`
	Model      string              `mapstructure:"model"`
	Generation LLMGenerationConfig `mapstructure:"generation"`
}

// LLMGenerationConfig 配置生成相关参数。
type LLMGenerationConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// MinIOConfig 存储 MinIO 对象存储的配置。Endpoint 为空时禁用头像上传。
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// RateLimitConfig 存储全局限流配置（按客户端 IP 统计）。
type RateLimitConfig struct {
	Limit         int `mapstructure:"limit"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// AssistantConfig 存储医疗助手行为相关的配置。
type AssistantConfig struct {
	// ClassifyFallback 为 true 时，缺失 queryType 的请求交给关键词分类器推断类别；
	// 否则保持原始行为，直接回退到 general。
	ClassifyFallback bool `mapstructure:"classify_fallback"`
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
// JWT secret 缺失视为致命的部署错误，直接终止启动，不回退到任何内置默认值。
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("读取配置文件失败: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("无法将配置解析到结构体中: %w", err))
	}

	if Conf.JWT.Secret == "" {
		panic(fmt.Errorf("jwt.secret 未配置，拒绝启动"))
	}
	if Conf.JWT.TokenExpireDays <= 0 {
		Conf.JWT.TokenExpireDays = 7
	}
	if Conf.RateLimit.Limit <= 0 {
		Conf.RateLimit.Limit = 100
	}
	if Conf.RateLimit.WindowMinutes <= 0 {
		Conf.RateLimit.WindowMinutes = 15
	}
}
