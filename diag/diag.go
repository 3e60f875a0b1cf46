// Package diag provides the development diagnostic channel used by the
// animation event registry and scripted callbacks.
package diag

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/milk9111/animevents/config"
	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger satisfies animevent.Logger and the script logger.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Nop discards everything. It is the production logger.
type Nop struct{}

func (Nop) Infof(string, ...any) {}
func (Nop) Warnf(string, ...any) {}
func (Nop) Errorf(string, ...any) {}

type zerologLogger struct {
	log zerolog.Logger
}

// Zerolog wraps a zerolog logger.
func Zerolog(l zerolog.Logger) Logger {
	return zerologLogger{log: l}
}

func (z zerologLogger) Infof(format string, args ...any) {
	z.log.Info().Msgf(format, args...)
}

func (z zerologLogger) Warnf(format string, args ...any) {
	z.log.Warn().Msgf(format, args...)
}

func (z zerologLogger) Errorf(format string, args ...any) {
	z.log.Error().Msgf(format, args...)
}

type zapLogger struct {
	log *zap.SugaredLogger
}

// Zap wraps a zap logger. A nil logger yields Nop.
func Zap(l *zap.Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return zapLogger{log: l.Sugar()}
}

func (z zapLogger) Infof(format string, args ...any) {
	z.log.Infof(format, args...)
}

func (z zapLogger) Warnf(format string, args ...any) {
	z.log.Warnf(format, args...)
}

func (z zapLogger) Errorf(format string, args ...any) {
	z.log.Errorf(format, args...)
}

// New builds the logger for cfg. Without Dev set it returns Nop. Output goes
// to w, or stderr when w is nil.
func New(cfg config.Diagnostics, w io.Writer) (Logger, error) {
	if !cfg.Dev {
		return Nop{}, nil
	}
	if w == nil {
		w = os.Stderr
	}

	switch cfg.Backend {
	case config.BackendZap:
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("diag: %w", err)
		}
		encCfg := zap.NewDevelopmentEncoderConfig()
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
		return Zap(zap.New(core).Named("animevents")), nil
	case config.BackendZerolog, "":
		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("diag: %w", err)
		}
		console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
		l := zerolog.New(console).Level(level).With().Timestamp().Str("component", "animevents").Logger()
		return Zerolog(l), nil
	default:
		return nil, fmt.Errorf("diag: unsupported backend %q", cfg.Backend)
	}
}
