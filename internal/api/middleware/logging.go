package middleware

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
)

// Logger логгер с привязкой полей к записи
type Logger interface {
	WithField(key string, value interface{}) *logger.Entry
}

// Logging пишет в лог метод, путь, код ответа и длительность каждого запроса
func Logging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			requestID, _ := GetRequestID(r.Context())
			entry := log.WithField("request_id", requestID)
			elapsed := time.Since(start).Milliseconds()
			switch {
			case rec.status >= http.StatusInternalServerError:
				entry.Error("%s %s - %d (%dms)", r.Method, r.URL.Path, rec.status, elapsed)
			case rec.status >= http.StatusBadRequest:
				entry.Warn("%s %s - %d (%dms)", r.Method, r.URL.Path, rec.status, elapsed)
			default:
				entry.Info("%s %s - %d (%dms)", r.Method, r.URL.Path, rec.status, elapsed)
			}
		})
	}
}
