package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// gzipResponseWriter решает, сжимать ли ответ, в момент записи заголовков:
// сжимаются только успешные ответы, остальные (в том числе пустые ответы об ошибке) уходят как есть
type gzipResponseWriter struct {
	http.ResponseWriter
	gz          *gzip.Writer
	wroteHeader bool
}

func (w *gzipResponseWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	if code == http.StatusOK && w.Header().Get("Content-Encoding") == "" {
		gz, err := gzip.NewWriterLevel(w.ResponseWriter, gzip.BestSpeed)
		if err == nil {
			w.Header().Set("Content-Encoding", "gzip")
			w.Header().Del("Content-Length")
			w.gz = gz
		}
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if w.gz != nil {
		return w.gz.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *gzipResponseWriter) Close() error {
	if w.gz == nil {
		return nil
	}
	return w.gz.Close()
}

func GzipSupport(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CDN должен хранить сжатую и несжатую версии ответа раздельно
		w.Header().Add("Vary", "Accept-Encoding")

		// Если клиент не поддерживает gzip, то передаем управление дальше
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gzWriter := &gzipResponseWriter{ResponseWriter: w}
		defer gzWriter.Close()
		next.ServeHTTP(gzWriter, r)
	})
}
