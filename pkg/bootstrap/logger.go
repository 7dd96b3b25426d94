package bootstrap

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"

	"github.com/jpsember/dev/pkg/config"
)

// hostHook 添加主机名到日志
type hostHook struct {
	host string
}

func (h *hostHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *hostHook) Fire(entry *log.Entry) error {
	entry.Data["host"] = h.host
	return nil
}

// detectHost 检测主机名
func detectHost() string {
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		return hostname
	}
	if data, err := os.ReadFile("/etc/hostname"); err == nil {
		if hostname := strings.TrimSpace(string(data)); hostname != "" {
			return hostname
		}
	}
	return "unknown"
}

// InitLogger 初始化日志格式、级别，按需输出到滚动文件
func InitLogger(cfg config.LogConfig, fileCfg config.LogFileConfig) error {
	return InitLoggerFor(log.StandardLogger(), cfg, fileCfg, os.Stderr)
}

// InitLoggerFor configures l, writing to console plus the optional log file.
func InitLoggerFor(l *log.Logger, cfg config.LogConfig, fileCfg config.LogFileConfig, console io.Writer) error {
	switch cfg.Format {
	case "json":
		l.SetFormatter(&log.JSONFormatter{})
	default:
		l.SetFormatter(&log.TextFormatter{})
	}

	if lvl, err := log.ParseLevel(cfg.Level); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(log.InfoLevel)
		l.Warnf("invalid log level %q, fallback to info", cfg.Level)
	}

	l.SetReportCaller(cfg.ReportCaller)
	l.SetOutput(console)

	if fileCfg.Enabled {
		writer, err := rotatingWriter(fileCfg)
		if err != nil {
			l.Errorf("设置日志输出失败: %v", err)
			return err
		}
		l.SetOutput(io.MultiWriter(console, writer))
		l.AddHook(&hostHook{host: detectHost()})
	}
	return nil
}

// rotatingWriter 创建按天滚动的日志文件
func rotatingWriter(fileCfg config.LogFileConfig) (io.Writer, error) {
	fileCfg.ApplyDefaults("dev")
	if err := os.MkdirAll(fileCfg.Dir, 0o755); err != nil {
		return nil, err
	}

	pattern := filepath.Join(fileCfg.Dir, fileCfg.Filename+".%Y%m%d.log")
	linkName := filepath.Join(fileCfg.Dir, fileCfg.Filename+".log")

	return rotatelogs.New(
		pattern,
		rotatelogs.WithLinkName(linkName),
		rotatelogs.WithMaxAge(time.Duration(fileCfg.MaxAgeDays)*24*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(fileCfg.RotationDays)*24*time.Hour),
	)
}
