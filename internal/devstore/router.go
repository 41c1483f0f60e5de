package devstore

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hostel-desk/config"
	"hostel-desk/internal/mw"
)

// Handler serves the REST surface of a Store for a fixed set of collections.
type Handler struct {
	store       Store
	collections map[string]struct{}
}

// NewHandler creates a handler exposing only the named collections.
func NewHandler(s Store, collections []string) *Handler {
	allowed := make(map[string]struct{}, len(collections))
	for _, c := range collections {
		allowed[c] = struct{}{}
	}
	return &Handler{store: s, collections: allowed}
}

// NewRouter creates and configures the store's gin router.
func NewRouter(h *Handler, cfg *config.StoreConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestLogger())

	allowCredentials := true
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.ReadCacheSeconds > 0 {
		r.Use(mw.NewReadCache(time.Duration(cfg.ReadCacheSeconds) * time.Second).Middleware())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/:collection", h.List)
	r.POST("/:collection", h.Create)
	r.GET("/:collection/:id", h.Get)
	r.PUT("/:collection/:id", h.Replace)
	r.DELETE("/:collection/:id", h.Delete)

	return r
}

// collection resolves the path's collection, answering 404 for unknown ones.
func (h *Handler) collection(c *gin.Context) (string, bool) {
	name := c.Param("collection")
	if _, ok := h.collections[name]; !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return "", false
	}
	return name, true
}

// List handles GET /:collection.
func (h *Handler) List(c *gin.Context) {
	name, ok := h.collection(c)
	if !ok {
		return
	}
	records, err := h.store.List(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Get handles GET /:collection/:id.
func (h *Handler) Get(c *gin.Context) {
	name, ok := h.collection(c)
	if !ok {
		return
	}
	record, err := h.store.Get(c.Request.Context(), name, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Create handles POST /:collection.
func (h *Handler) Create(c *gin.Context) {
	name, ok := h.collection(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	record, err := h.store.Create(c.Request.Context(), name, body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Replace handles PUT /:collection/:id.
func (h *Handler) Replace(c *gin.Context) {
	name, ok := h.collection(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	record, err := h.store.Replace(c.Request.Context(), name, c.Param("id"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete handles DELETE /:collection/:id.
func (h *Handler) Delete(c *gin.Context) {
	name, ok := h.collection(c)
	if !ok {
		return
	}
	if err := h.store.Delete(c.Request.Context(), name, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrConflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidBody):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Store error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
