package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Options selects the logger flavor.
type Options struct {
	Debug      bool   // Development encoder at debug level.
	Level      string // Minimum level for the production logger; empty means warn.
	AppName    string
	AppVersion string
}

// Setup builds the process logger and installs it as the zap global.
// On failure it returns a no-op logger together with the error.
func Setup(opts Options) (*zap.Logger, error) {
	var cfg zap.Config

	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		level := opts.Level
		if level == "" {
			level = "warn"
		}
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return zap.NewNop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = lvl
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    opts.AppName,
		"appVersion": opts.AppVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
