// Package logger builds configured slog loggers for the dataroom services.
//
// The default logger writes JSON at info level to stdout, suitable for log
// aggregation in production. Options switch the format, level, destination
// and static attributes:
//
//	log := logger.New(
//		logger.WithTextFormatter(),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithAttr(slog.String("service", "ingest")),
//	)
package logger
