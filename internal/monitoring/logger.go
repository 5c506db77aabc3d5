package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides enhanced structured logging with context
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new enhanced logger
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// TextAnalysisLogger logs a completed text-modality analysis run
func (l *Logger) TextAnalysisLogger(interviewID string, totalQuestions, analyzed, failed, averageScore int, duration time.Duration) {
	l.Info("Text Analysis Completed",
		"interview_id", interviewID,
		"total_questions", totalQuestions,
		"analyzed", analyzed,
		"failed", failed,
		"average_score", averageScore,
		"duration_ms", duration.Milliseconds(),
	)
}

// AudioAnalysisLogger logs a completed speech-modality analysis
func (l *Logger) AudioAnalysisLogger(questionID int, wordCount, overallScore int, fallback bool, duration time.Duration) {
	l.Info("Audio Analysis Completed",
		"question_id", questionID,
		"word_count", wordCount,
		"overall_score", overallScore,
		"fallback", fallback,
		"duration_ms", duration.Milliseconds(),
	)
}

// ExternalAPILogger logs external provider call details
func (l *Logger) ExternalAPILogger(apiName, method, endpoint string, statusCode int, duration time.Duration, success bool) {
	l.Info("External API Call",
		"api", apiName,
		"method", method,
		"endpoint", endpoint,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// APIErrorLogger logs API errors with context
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}
