package logger

import (
	"Pinwall/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"strings"
)

// LogWriter gin 访问日志的输出目标
var LogWriter io.Writer = os.Stdout

// InitLogger 初始化全局 slog, 配置了 logstash 地址时同时向远端输出
func InitLogger(cfg config.LogConfig) {
	opts := &log.HandlerOptions{Level: ParseLevel(cfg.Level)}
	hStdout := log.NewJSONHandler(os.Stdout, opts)

	var finalHandler log.Handler = hStdout

	if cfg.LogstashAddress != "" {
		conn, err := net.Dial("tcp", cfg.LogstashAddress)
		if err == nil {
			hRemote := log.NewJSONHandler(conn, opts).
				WithAttrs([]log.Attr{log.String("target_index", cfg.LogstashIndex)})

			finalHandler = &TeeHandler{
				handlers: []log.Handler{hStdout, &RemoteFilterHandler{next: hRemote}},
			}
			LogWriter = io.MultiWriter(os.Stdout, conn)
		} else {
			log.Warn("Failed to connect to Logstash, logging to stdout only", "err", err)
		}
	}

	log.SetDefault(log.New(&ContextHandler{finalHandler}))
}

// ParseLevel 将配置中的字符串转换为日志级别, 未知值按 info 处理
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
