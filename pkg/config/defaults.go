package config

// ApplyDefaults 应用全部默认值
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "dev"
	}
	c.Log.ApplyDefaults()
	c.LogFile.ApplyDefaults(c.App.Name)
	c.Tracing.ApplyDefaults()
	c.Kafka.ApplyDefaults()
	c.Optional.ApplyDefaults()
	c.Collect.ApplyDefaults()
	c.Report.ApplyDefaults()
}

// ApplyDefaults 应用日志默认值
func (l *LogConfig) ApplyDefaults() {
	if l.Format == "" {
		l.Format = "text"
	}
	if l.Level == "" {
		l.Level = "info"
	}
}

// ApplyDefaults 应用日志文件默认值
func (f *LogFileConfig) ApplyDefaults(serviceName string) {
	if f.Dir == "" {
		f.Dir = "./logs"
	}
	if f.Filename == "" {
		f.Filename = serviceName
	}
	if f.MaxAgeDays <= 0 {
		f.MaxAgeDays = 7
	}
	if f.RotationDays <= 0 {
		f.RotationDays = 1
	}
}

// ApplyDefaults 应用 Tracing 配置默认值
func (t *TracingConfig) ApplyDefaults() {
	if t.Exporter == "" {
		t.Exporter = "disabled"
	}
	if t.SampleRatio <= 0 {
		t.SampleRatio = 1.0
	}
}

// ApplyDefaults 应用 Kafka 配置默认值
func (k *KafkaConfig) ApplyDefaults() {
	if k.Topic == "" {
		k.Topic = "dev.failures"
	}
	if k.ClientID == "" {
		k.ClientID = "dev"
	}
	if k.MaxAttempts <= 0 {
		k.MaxAttempts = 3
	}
}

// ApplyDefaults 应用 optional 导入默认值
func (o *OptionalConfig) ApplyDefaults() {
	if len(o.Importers) == 0 {
		o.Importers = []string{"registry", "interp"}
	}
	if o.Advice == nil {
		o.Advice = map[string]string{}
	}
}

// ApplyDefaults 应用 collect 默认值
func (c *CollectConfig) ApplyDefaults() {
	if c.Input == "" {
		c.Input = "."
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{"go", "py", "rs", "java"}
	}
	if len(c.Prefixes) == 0 {
		c.Prefixes = []string{"ERRCODE_", "ERROR_"}
	}
	if len(c.GoTypes) == 0 {
		c.GoTypes = []string{"Code"}
	}
}

// ApplyDefaults 应用报告默认值
func (r *ReportConfig) ApplyDefaults() {
	if len(r.Sinks) == 0 {
		r.Sinks = []string{"log"}
	}
	if r.RedisKey == "" {
		r.RedisKey = "dev:failures"
	}
	if r.TTL <= 0 {
		r.TTL = 7 * 24 * 3600
	}
	if r.TimeoutSeconds <= 0 {
		r.TimeoutSeconds = 5
	}
}
