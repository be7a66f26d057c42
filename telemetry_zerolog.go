package sdk

import (
	"context"

	"github.com/rs/zerolog"
)

// ZerologHooks routes SDK log entries and metrics to a zerolog logger.
// OnHTTPRequest/OnHTTPResponse are left unset; the log entries already
// cover them.
func ZerologHooks(logger zerolog.Logger) TelemetryHooks {
	return TelemetryHooks{
		OnLogEntry: func(_ context.Context, entry LogEntry) {
			evt := logger.WithLevel(zerologLevel(entry.Level))
			if len(entry.Fields) > 0 {
				evt = evt.Fields(entry.Fields)
			}
			evt.Msg(entry.Message)
		},
		OnMetric: func(_ context.Context, m Metric) {
			evt := logger.Debug().Str("metric", m.Name).Float64("value", m.Value)
			for k, v := range m.Labels {
				evt = evt.Str(k, v)
			}
			evt.Msg("metric")
		},
	}
}

func zerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
