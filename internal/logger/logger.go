// Package logger builds the zap logger used across bookgraph and turns bus
// events into access log lines.
package logger

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	eventbus "github.com/hanpama/bookgraph/internal/eventbus"
	events "github.com/hanpama/bookgraph/internal/events"
	reqid "github.com/hanpama/bookgraph/internal/reqid"
)

type Config struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	DevMode bool   `env:"LOG_DEV_MODE" envDefault:"false"`
	Encoder string `env:"LOG_ENCODER" envDefault:"json"`
}

// New builds a logger from cfg. DevMode switches to zap's development
// defaults (console output, stack traces on warnings).
func New(cfg *Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.DevMode {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, errors.Wrapf(err, "log level %q", cfg.Level)
		}
		zc.Level = level
	}

	switch cfg.Encoder {
	case "":
	case "json", "console":
		zc.Encoding = cfg.Encoder
	default:
		return nil, errors.Errorf("unknown log encoder %q", cfg.Encoder)
	}
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return log, nil
}

// Attach subscribes log to the global event bus. The returned func removes
// every subscription.
func Attach(log *zap.Logger) (detach func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
			log.Info("http request",
				requestID(ctx),
				zap.String("method", e.Request.Method),
				zap.String("path", e.Request.URL.Path),
				zap.Int("status", e.Status),
				zap.Int("bytes", e.Bytes),
				zap.Duration("duration", e.Duration),
			)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.GraphQLFinish) {
			fields := []zap.Field{
				requestID(ctx),
				zap.String("operation", e.OperationName),
				zap.String("type", e.OperationType),
				zap.Int("errors", len(e.Errors)),
				zap.Bool("partial", e.Partial),
				zap.Duration("duration", e.Duration),
			}
			if len(e.Errors) > 0 {
				fields = append(fields, zap.Errors("error_list", e.Errors))
				log.Warn("graphql operation", fields...)
				return
			}
			log.Debug("graphql operation", fields...)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.RecordAppended) {
			log.Debug("record appended",
				requestID(ctx),
				zap.String("collection", e.Collection),
				zap.Int("id", e.ID),
				zap.Duration("duration", e.Duration),
			)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func requestID(ctx context.Context) zap.Field {
	if id, ok := reqid.FromContext(ctx); ok {
		return zap.String("request_id", reqid.String(id))
	}
	return zap.Skip()
}
