package users

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Native answers by inspecting the request URL directly, with no router,
// middleware or body parsing. Every response is text/plain.
func Native(log *slog.Logger) http.Handler {
	list, _ := json.Marshal(Seed())
	notFound := []byte(`{"error":"Not Found"}`)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info(r.Method + " " + r.URL.RequestURI())
		w.Header().Set("Content-Type", "text/plain")

		switch r.URL.RequestURI() {
		case "/":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("Hello, World!\n"))
		case "/api/users":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(list)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write(notFound)
		}
	})
}
