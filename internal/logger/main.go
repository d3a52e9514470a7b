// Package logger configures the global zerolog logger of the service.
//
// Output can go to the console, to lumberjack rotated files and to datadog at once.
// Console and file output are split into one writer per level group, see LevelWriter.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logDirMode = 0o750

// LevelWriter routes each event to the writer of its level group.
type LevelWriter struct {
	Info  io.Writer // debug and info
	Warn  io.Writer
	Error io.Writer // error, fatal and panic
	Trace io.Writer
}

// Write sends level-less output to the info writer.
func (lw *LevelWriter) Write(p []byte) (int, error) {
	return lw.Info.Write(p) //nolint:wrapcheck
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	var w io.Writer

	switch {
	case l == zerolog.Disabled:
		return 0, nil
	case l == zerolog.TraceLevel:
		w = lw.Trace
	case l == zerolog.WarnLevel:
		w = lw.Warn
	case l > zerolog.WarnLevel:
		w = lw.Error
	default:
		w = lw.Info
	}

	return w.Write(p) //nolint:wrapcheck
}

// Init replaces the global logger according to cfg. An empty LogLevel means info.
func Init(cfg Log) error {
	level := zerolog.InfoLevel

	if cfg.LogLevel != "" {
		var err error

		if level, err = zerolog.ParseLevel(cfg.LogLevel); err != nil {
			return errors.Wrapf(err, "loglevel %s is not supported", cfg.LogLevel)
		}
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	writers, err := outputs(cfg)
	if err != nil {
		return err
	}

	if len(writers) == 0 && level != zerolog.Disabled {
		return ErrNoOutput
	}

	zerolog.SetGlobalLevel(level)
	zerolog.ErrorHandler = reportWriteError //nolint:reassign

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewPrometheusHook(cfg.ServiceName)).
		With().
		Timestamp().
		Str("app", cfg.AppName).
		Str("service", cfg.ServiceName)

	// stacks are only worth their size at trace level
	if level == zerolog.TraceLevel {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
		ctx = ctx.Stack()
	}

	if cfg.ReportCaller {
		ctx = ctx.Caller()
	}

	log.Logger = ctx.Logger()

	return nil
}

func outputs(cfg Log) ([]io.Writer, error) {
	var writers []io.Writer

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		fw, err := newRollingFiles(cfg.File)
		if err != nil {
			return nil, err
		}

		writers = append(writers, fw)
	}

	if cfg.DataDog.Enabled {
		dw, err := NewDataDogWriter(cfg)
		if err != nil {
			return nil, err
		}

		writers = append(writers, dw)
	}

	return writers, nil
}

// NewConsoleWriter writes info to stdout and everything else to stderr.
func NewConsoleWriter(cfg Log) io.Writer {
	wrap := func(out io.Writer) io.Writer {
		if !cfg.Console.UseConsoleWriter {
			return out
		}

		return zerolog.ConsoleWriter{Out: out, TimeFormat: zerolog.TimeFieldFormat}
	}

	return &LevelWriter{
		Info:  wrap(os.Stdout),
		Warn:  wrap(os.Stderr),
		Error: wrap(os.Stderr),
		Trace: wrap(os.Stderr),
	}
}

func newRollingFiles(f LogFile) (io.Writer, error) {
	if err := f.mkdir(); err != nil {
		return nil, err
	}

	return &LevelWriter{
		Info:  f.rolling(f.Info),
		Warn:  f.rolling(f.Warn),
		Error: f.rolling(f.Error),
		Trace: f.rolling(f.Trace),
	}, nil
}

// AccessWriter returns the rotated access log file.
func (f LogFile) AccessWriter() (io.Writer, error) {
	if err := f.mkdir(); err != nil {
		return nil, err
	}

	return f.rolling(f.Access), nil
}

func (f LogFile) mkdir() error {
	if f.Path == "" {
		return nil
	}

	return errors.Wrapf(os.MkdirAll(f.Path, logDirMode), "can't create log directory %s", f.Path)
}

func (f LogFile) rolling(rf RollingFile) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(f.Path, rf.Name),
		MaxSize:    rf.MaxSize,
		MaxAge:     rf.MaxAge,
		MaxBackups: rf.MaxBackups,
		Compress:   rf.Compress,
	}
}
