package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvPrefix is the environment variable prefix used by Load.
const DefaultEnvPrefix = "DEV"

// keyDelimiter separates nested viper keys. Map keys such as Go import
// paths contain dots, so "." cannot be used.
const keyDelimiter = "::"

// LoadOptions 加载配置选项
type LoadOptions struct {
	ConfigPath    string // 配置文件目录，默认 "./configs"
	ConfigFile    string // 显式配置文件路径，优先于 ConfigPath
	EnvPrefix     string // 环境变量前缀，用于 viper.AutomaticEnv
	AllowNoConfig bool   // 允许没有配置文件，纯环境变量配置
}

// LoadConfig 通用配置加载函数
// cfg 必须是指向配置结构体的指针
func LoadConfig(cfg interface{}, opts ...LoadOptions) error {
	opt := LoadOptions{ConfigPath: "./configs"}
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.ConfigPath == "" {
		opt.ConfigPath = "./configs"
	}

	if err := loadDotEnv(); err != nil {
		return err
	}

	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	if opt.ConfigFile != "" {
		v.SetConfigFile(opt.ConfigFile)
	} else {
		v.SetConfigName(fmt.Sprintf("config_%s", GetEnv()))
		v.SetConfigType("yaml")
		v.AddConfigPath(opt.ConfigPath)
	}

	if opt.EnvPrefix != "" {
		v.SetEnvPrefix(opt.EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_"))
		v.AutomaticEnv()
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !(errors.As(err, &notFound) && opt.AllowNoConfig) {
			return fmt.Errorf("read config failed: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config failed: %w", err)
	}
	return nil
}

// Load reads the dev tool configuration, applies defaults and injects
// Redis and Kafka passwords from secrets.
func Load(opts ...LoadOptions) (*Config, error) {
	opt := LoadOptions{EnvPrefix: DefaultEnvPrefix}
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.EnvPrefix == "" {
		opt.EnvPrefix = DefaultEnvPrefix
	}

	cfg := &Config{}
	secrets := []SecretDefinition{
		{Name: "REDIS_PASSWORD", Target: &cfg.Redis.Password},
		{Name: "KAFKA_PASSWORD", Target: &cfg.Kafka.Password},
	}
	if err := LoadConfigWithSecrets(cfg, secrets, opt); err != nil {
		return nil, err
	}
	if cfg.App.Env == "" {
		cfg.App.Env = GetEnv()
	}
	if cfg.App.NodeID == "" {
		cfg.App.NodeID = GetNodeID("DEV_NODE_ID")
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func loadDotEnv() error {
	envFile := os.Getenv("ENV_FILE")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s failed: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env failed: %w", err)
	}
	return nil
}

// GetEnv 获取当前环境，默认为 "dev"
func GetEnv() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		return "dev"
	}
	return env
}

// GetNodeID 获取节点 ID，按顺序尝试多个环境变量
func GetNodeID(envKeys ...string) string {
	for _, key := range envKeys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	if v := os.Getenv("HOSTNAME"); v != "" {
		return v
	}
	return ""
}
