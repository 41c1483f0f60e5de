package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// CacheStatusHeader reports HIT when a response was served from the read cache.
const CacheStatusHeader = "X-Cache"

// contentHeaders are replayed on a hit. Everything else belongs to the request
// that produced the response (request id, CORS) and is set afresh each time.
var contentHeaders = []string{"Content-Type", "Content-Length", "Content-Encoding"}

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

func contentOnly(h http.Header) http.Header {
	out := make(http.Header, len(contentHeaders))
	for _, k := range contentHeaders {
		if v, ok := h[k]; ok {
			out[k] = append([]string(nil), v...)
		}
	}
	return out
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ReadCache keeps successful GET responses for a while. Any successful write
// request passing through the same middleware empties it, so a read never shows
// data older than the last write it could have seen.
type ReadCache struct {
	store    *cache.Cache
	duration time.Duration
}

// NewReadCache creates a cache holding responses for d.
func NewReadCache(d time.Duration) *ReadCache {
	return &ReadCache{store: cache.New(d, 2*d), duration: d}
}

// Invalidate drops every cached response.
func (rc *ReadCache) Invalidate() {
	rc.store.Flush()
}

// Middleware serves cached GETs and invalidates on POST, PUT, PATCH and DELETE.
func (rc *ReadCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			if isWrite(c.Request.Method) && c.Writer.Status() < http.StatusBadRequest {
				rc.Invalidate()
			}
			return
		}

		key := c.Request.RequestURI
		if resp, found := rc.store.Get(key); found {
			cached := resp.(cachedResponse)
			for k, v := range cached.headers {
				c.Writer.Header()[k] = append([]string(nil), v...)
			}
			c.Header(CacheStatusHeader, "HIT")
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only cache successful responses
		if blw.Status() >= 200 && blw.Status() < 300 {
			rc.store.Set(key, cachedResponse{
				status:  blw.Status(),
				headers: contentOnly(blw.Header()),
				body:    blw.body.Bytes(),
			}, rc.duration)
		}
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
