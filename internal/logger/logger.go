// Package logger wires logrus with a lumberjack rotating file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/config"
)

var (
	mu  sync.RWMutex
	std = logrus.New()
)

// Init builds the application logger and makes it the package default.
func Init(cfg config.LogConfig) (*logrus.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	std = l
	mu.Unlock()
	return l, nil
}

func New(cfg config.LogConfig) (*logrus.Logger, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	var writers []io.Writer
	if cfg.Output == "file" || cfg.Output == "both" {
		if cfg.Path == "" {
			return nil, fmt.Errorf("log output %q needs LOG_PATH", cfg.Output)
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSize, // MB
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		})
	}
	if cfg.Output == "stdout" || cfg.Output == "both" || len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}
	l.SetOutput(io.MultiWriter(writers...))

	return l, nil
}

// L returns the default logger.
func L() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

// WithRequest returns an entry carrying the request id, method, path and client ip.
func WithRequest(c *fiber.Ctx) *logrus.Entry {
	fields := logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	}
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		fields["request_id"] = rid
	}
	if uid, ok := c.Locals("userId").(string); ok && uid != "" {
		fields["user_id"] = uid
	}
	return L().WithFields(fields)
}
