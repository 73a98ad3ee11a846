package main

import (
	"log"
	"net/http"
	"strconv"
	"time"
)

// statusWriter proxies http.ResponseWriter and records the response
// status and body length for the access log.
type statusWriter struct {
	http.ResponseWriter
	status int
	length int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	length, err := w.ResponseWriter.Write(b)
	w.length += length
	return length, err
}

// httpLog logs every request with status, response size and latency.
func httpLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		writer := statusWriter{ResponseWriter: w}
		next.ServeHTTP(&writer, r)
		latency := time.Since(start)

		log.Printf("%s \"%s %s %s\" %d %d %s %dms",
			r.RemoteAddr,
			r.Method,
			r.URL.String(),
			r.Proto,
			writer.status,
			writer.length,
			strconv.Quote(r.Header.Get("User-Agent")),
			latency.Milliseconds())
	})
}
