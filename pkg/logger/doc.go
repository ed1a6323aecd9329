// Package logger builds the *slog.Logger instances shared by the
// translation runtime's components.
//
// A single factory, New, creates a logger configured by functional options.
// The JSON format targets log aggregation in production; the text format
// uses the tint handler for readable, colorized development output.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithTextFormatter(),
//		logger.WithAttr(slog.String("component", "i18n")),
//	)
package logger
