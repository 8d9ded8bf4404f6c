package main

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

func registerRoutes(mux *http.ServeMux, display *WebDisplay) {
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/data.json", display.handleWebSocket)

	fs := http.FileServer(http.Dir("./static"))
	mux.Handle("/", withLogging(fs))
}

func withLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("HTTP request")
		h.ServeHTTP(w, r)
	})
}
