package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// jsonCompressor compresses JSON responses for clients that accept gzip or
// deflate. Empty responses and other content types pass through.
var jsonCompressor = middleware.Compress(gzip.DefaultCompression, "application/json")

// withGZip inflates gzip request bodies and compresses JSON responses.
func withGZip(next http.Handler) http.Handler {
	compressed := jsonCompressor(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			compressed.ServeHTTP(w, r)
			return
		}

		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, "invalid gzip body", http.StatusBadRequest)
			return
		}

		r.Body = gzipBody{Reader: zr, body: r.Body}
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1

		compressed.ServeHTTP(w, r)
	})
}

// gzipBody closes both the decompressor and the original body.
type gzipBody struct {
	*gzip.Reader
	body io.ReadCloser
}

func (b gzipBody) Close() error {
	_ = b.Reader.Close()
	return b.body.Close()
}
