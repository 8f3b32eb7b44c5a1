// Package logging builds the zap logger shared by every totxt component.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Logger is the global logger instance
var Logger = zap.NewNop()

// level is shared by every logger built by Setup so verbosity can change
// after flags are parsed.
var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// Options selects the logger flavor.
type Options struct {
	Verbose    bool   // Log at debug level.
	Color      bool   // Human-readable colored console output instead of JSON.
	AppName    string // Added as appName to JSON output.
	AppVersion string // Added as appVersion to JSON output.
}

// Setup builds a logger for opts, installs it as the zap global and returns
// it. On failure Logger falls back to an example logger.
func Setup(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Color {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.TimeKey = ""
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
	} else {
		cfg = zap.NewProductionConfig()
		cfg.InitialFields = map[string]interface{}{
			"appName":    opts.AppName,
			"appVersion": opts.AppVersion,
		}
	}
	cfg.Level = level
	SetVerbose(opts.Verbose)

	logger, err := cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return Logger, err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return Logger, nil
}

// SetVerbose switches every logger built by Setup between debug and info.
func SetVerbose(verbose bool) {
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.InfoLevel)
}

// Success logs the successful end of an operation.
func Success(logger *zap.Logger, msg string, fields ...zap.Field) {
	logger.Info(msg, append(fields, zap.String("status", "success"))...)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// IsRegularFile reports whether f is a regular file.
func IsRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
