package config

// Config is the full configuration of the dev tool.
type Config struct {
	App      AppConfig      `yaml:"app" mapstructure:"app"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	LogFile  LogFileConfig  `yaml:"log_file" mapstructure:"log_file"`
	Tracing  TracingConfig  `yaml:"tracing" mapstructure:"tracing"`
	Redis    RedisConfig    `yaml:"redis" mapstructure:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka" mapstructure:"kafka"`
	Optional OptionalConfig `yaml:"optional" mapstructure:"optional"`
	Collect  CollectConfig  `yaml:"collect" mapstructure:"collect"`
	Report   ReportConfig   `yaml:"report" mapstructure:"report"`
}

// ==================== 基础配置 ====================

// AppConfig 应用基础配置
type AppConfig struct {
	Env    string `yaml:"env" mapstructure:"env"`
	Name   string `yaml:"name" mapstructure:"name"`
	NodeID string `yaml:"node_id" mapstructure:"node_id"`
}

// LogConfig 日志配置
type LogConfig struct {
	Format       string `yaml:"format" mapstructure:"format"`
	Level        string `yaml:"level" mapstructure:"level"`
	ReportCaller bool   `yaml:"report_caller" mapstructure:"report_caller"`
}

// LogFileConfig 日志文件配置
type LogFileConfig struct {
	Enabled      bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir          string `yaml:"dir" mapstructure:"dir"`
	Filename     string `yaml:"filename" mapstructure:"filename"`
	MaxAgeDays   int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	RotationDays int    `yaml:"rotation_days" mapstructure:"rotation_days"`
}

// ==================== 基础设施配置 ====================

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	Db       int    `yaml:"db" mapstructure:"db"`
}

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	Enabled       bool     `yaml:"enabled" mapstructure:"enabled"`
	Brokers       []string `yaml:"brokers" mapstructure:"brokers"`
	Topic         string   `yaml:"topic" mapstructure:"topic"`
	ClientID      string   `yaml:"client_id" mapstructure:"client_id"`
	Username      string   `yaml:"username" mapstructure:"username"`
	Password      string   `yaml:"password" mapstructure:"password"`
	SASLMechanism string   `yaml:"sasl_mechanism" mapstructure:"sasl_mechanism"`
	TLSEnabled    bool     `yaml:"tls_enabled" mapstructure:"tls_enabled"`
	RequiredAcks  string   `yaml:"required_acks" mapstructure:"required_acks"`
	MaxAttempts   int      `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// ==================== 可观测性配置 ====================

// TracingConfig 分布式追踪配置
type TracingConfig struct {
	Exporter     string            `yaml:"exporter" mapstructure:"exporter"`
	Endpoint     string            `yaml:"endpoint" mapstructure:"endpoint"`
	ServiceName  string            `yaml:"service_name" mapstructure:"service_name"`
	Insecure     bool              `yaml:"insecure" mapstructure:"insecure"`
	SampleRatio  float64           `yaml:"sample_ratio" mapstructure:"sample_ratio"`
	ResourceTags map[string]string `yaml:"resource_tags" mapstructure:"resource_tags"`
}

// ==================== 业务配置 ====================

// OptionalConfig controls how optional modules are imported.
//
// Advice maps a package name or import path, e.g. "gopkg.in/yaml.v3", to
// the text shown when it cannot be loaded. Keys are lowercased by the loader.
type OptionalConfig struct {
	GoPath    string            `yaml:"gopath" mapstructure:"gopath"`
	Importers []string          `yaml:"importers" mapstructure:"importers"`
	Advice    map[string]string `yaml:"advice" mapstructure:"advice"`
}

// CollectConfig controls the error code collector.
type CollectConfig struct {
	Input      string   `yaml:"input" mapstructure:"input"`
	Output     string   `yaml:"output" mapstructure:"output"`
	Extensions []string `yaml:"extensions" mapstructure:"extensions"`
	Prefixes   []string `yaml:"prefixes" mapstructure:"prefixes"`
	// GoTypes names Go types whose typed constants count as error codes.
	GoTypes []string `yaml:"go_types" mapstructure:"go_types"`
}

// ReportConfig selects where failure reports go.
type ReportConfig struct {
	// Sinks supports: "log" | "panic" | "redis" | "kafka".
	Sinks          []string `yaml:"sinks" mapstructure:"sinks"`
	RedisKey       string   `yaml:"redis_key" mapstructure:"redis_key"`
	TTL            Duration `yaml:"ttl" mapstructure:"ttl"`
	Topic          string   `yaml:"topic" mapstructure:"topic"`
	TimeoutSeconds int      `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}
