package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"hostel-desk/config"
	"hostel-desk/internal/mw"
)

//go:embed templates/*.html
var templateFS embed.FS

func pageTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// NewRouter creates and configures the desk's gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestLogger())
	r.SetHTMLTemplate(pageTemplates())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	desk := r.Group("/")
	desk.Use(rateLimiter)
	{
		desk.GET("/", h.GetPage)
		desk.POST("/actions", h.PostAction)
		desk.POST("/bookings", h.PostBooking)
		desk.POST("/refresh", h.PostRefresh)
		desk.POST("/notice/dismiss", h.PostDismiss)
	}

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/rooms", h.GetRooms)
		api.GET("/bookings", h.GetBookings)
	}

	return r
}
