package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
app:
  name: devtool
log:
  level: debug
optional:
  importers: [interp]
  advice:
    yaml: "go get gopkg.in/yaml.v3"
    github.com/foo/bar: "go get github.com/foo/bar"
    gopkg.in/yaml.v3: "go get gopkg.in/yaml.v3@latest"
collect:
  input: ./src
report:
  sinks: [log, redis]
  ttl: 60
`

func writeConfig(t *testing.T, env, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config_"+env+".yaml"), []byte(body), 0o644))
	return dir
}

func TestLoad_FromFile(t *testing.T) {
	t.Setenv("APP_ENV", "unit")
	dir := writeConfig(t, "unit", testYAML)

	cfg, err := Load(LoadOptions{ConfigPath: dir})
	require.NoError(t, err)

	assert.Equal(t, "devtool", cfg.App.Name)
	assert.Equal(t, "unit", cfg.App.Env)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, []string{"interp"}, cfg.Optional.Importers)
	assert.Equal(t, "go get gopkg.in/yaml.v3", cfg.Optional.Advice["yaml"])
	assert.Equal(t, "go get github.com/foo/bar", cfg.Optional.Advice["github.com/foo/bar"])
	assert.Equal(t, "go get gopkg.in/yaml.v3@latest", cfg.Optional.Advice["gopkg.in/yaml.v3"])
	assert.Len(t, cfg.Optional.Advice, 3)
	assert.Equal(t, "./src", cfg.Collect.Input)
	assert.Equal(t, []string{"go", "py", "rs", "java"}, cfg.Collect.Extensions)
	assert.Equal(t, []string{"log", "redis"}, cfg.Report.Sinks)
	assert.Equal(t, time.Minute, cfg.Report.TTL.Duration())
	assert.Equal(t, "devtool", cfg.LogFile.Filename)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_ENV", "unit")
	t.Setenv("DEV_LOG_LEVEL", "warn")
	dir := writeConfig(t, "unit", testYAML)

	cfg, err := Load(LoadOptions{ConfigPath: dir})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("APP_ENV", "absent")
	dir := t.TempDir()

	_, err := Load(LoadOptions{ConfigPath: dir})
	require.Error(t, err)

	cfg, err := Load(LoadOptions{ConfigPath: dir, AllowNoConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.App.Name)
	assert.Equal(t, []string{"registry", "interp"}, cfg.Optional.Importers)
	assert.Equal(t, []string{"log"}, cfg.Report.Sinks)
	assert.Equal(t, "disabled", cfg.Tracing.Exporter)
}

func TestLoad_Secrets(t *testing.T) {
	t.Setenv("APP_ENV", "absent")
	secretFile := filepath.Join(t.TempDir(), "redis-password")
	require.NoError(t, os.WriteFile(secretFile, []byte("s3cret\n"), 0o600))
	t.Setenv("REDIS_PASSWORD_FILE", secretFile)
	t.Setenv("KAFKA_PASSWORD", "kpass")

	cfg, err := Load(LoadOptions{ConfigPath: t.TempDir(), AllowNoConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Redis.Password)
	assert.Equal(t, "kpass", cfg.Kafka.Password)
}

func TestLoadConfigWithSecrets_Required(t *testing.T) {
	t.Setenv("APP_ENV", "absent")
	var target string
	err := LoadConfigWithSecrets(&Config{}, []SecretDefinition{
		{Name: "DEV_TEST_MISSING_SECRET", Target: &target, Required: true},
	}, LoadOptions{ConfigPath: t.TempDir(), AllowNoConfig: true})

	var notFound *SecretNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "DEV_TEST_MISSING_SECRET", notFound.Name)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("APP_ENV", "")
	assert.Equal(t, "dev", GetEnv())
	t.Setenv("APP_ENV", "prod")
	assert.Equal(t, "prod", GetEnv())
}
