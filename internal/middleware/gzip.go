package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// Gzip compresses responses for clients that accept gzip encoding.
func Gzip(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}
