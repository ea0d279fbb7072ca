package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
)

// Recovery превращает панику обработчика в 500
func Recovery(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newStatusRecorder(w)
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					log.Error("HTTP %s %s - panic recovered: %v\n%s", r.Method, r.URL.Path, p, debug.Stack())
					if !rec.wroteHeader {
						handlers.RespondInternalError(rec)
					}
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
