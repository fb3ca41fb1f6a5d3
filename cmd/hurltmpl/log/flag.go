package log

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AlexanderGrooff/hurl-template-go/cmd/hurltmpl/enum"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// RegisterLoggingFlags adds the --loglevel and --logformat persistent flags.
func RegisterLoggingFlags(cmd *cobra.Command) {
	enum.Var(cmd.PersistentFlags(), "loglevel", []string{
		"warn",
		"debug",
		"info",
		"error",
	}, "set the log level (debug, info, warn, error)")
	enum.Var(cmd.PersistentFlags(), "logformat", []string{"text", "json"}, "set the log format (text, json)")
}

// GetBaseLogger builds a logger writing to the command's error stream, so
// logs never mix with rendered output.
func GetBaseLogger(cmd *cobra.Command) (*slog.Logger, error) {
	logLevel, err := GetLoggerLevel(cmd)
	if err != nil {
		return nil, err
	}

	format, err := enum.Get(cmd.Flags(), "logformat")
	if err != nil {
		return nil, err
	}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: logLevel,
		})
	case "text":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: logLevel,
		})
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	return slog.New(handler), nil
}

// GetLoggerLevel returns the slog level selected by --loglevel.
func GetLoggerLevel(cmd *cobra.Command) (slog.Level, error) {
	logLevel, err := enum.Get(cmd.Flags(), "loglevel")
	if err != nil {
		return slog.LevelWarn, err
	}
	level, ok := levels[logLevel]
	if !ok {
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", logLevel)
	}
	return level, nil
}
