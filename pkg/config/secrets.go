package config

import (
	"os"
	"strings"
)

// GetSecretOrEnv 读取敏感配置
// 优先级: {NAME}_FILE 指向的文件 > {NAME} 环境变量 > defaultValue
func GetSecretOrEnv(name string, defaultValue string) string {
	if v, ok := readSecretFile(os.Getenv(name + "_FILE")); ok {
		return v
	}
	if v := os.Getenv(name); v != "" {
		return v
	}
	return defaultValue
}

func readSecretFile(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// SecretDefinition 描述一个注入到配置字段的 Secret
type SecretDefinition struct {
	Name     string  // 如 REDIS_PASSWORD
	Target   *string // 写入的字段
	Default  string
	Required bool
}

// apply 解析并写入 Target，空值不覆盖配置文件中的值
func (s SecretDefinition) apply() error {
	value := GetSecretOrEnv(s.Name, s.Default)
	if value == "" {
		if s.Required {
			return &SecretNotFoundError{Name: s.Name}
		}
		return nil
	}
	if s.Target != nil {
		*s.Target = value
	}
	return nil
}

// SecretNotFoundError 必需的 Secret 缺失
type SecretNotFoundError struct {
	Name string
}

func (e *SecretNotFoundError) Error() string {
	return "required secret not found: " + e.Name
}

// LoadConfigWithSecrets 先加载配置，再依次注入 secrets
func LoadConfigWithSecrets(cfg any, secrets []SecretDefinition, opts ...LoadOptions) error {
	if err := LoadConfig(cfg, opts...); err != nil {
		return err
	}
	for _, s := range secrets {
		if err := s.apply(); err != nil {
			return err
		}
	}
	return nil
}
