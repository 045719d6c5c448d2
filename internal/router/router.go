package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/medagenda/agenda-api/internal/handler"
	"github.com/medagenda/agenda-api/internal/middleware"
)

// Handler is anything that can attach its routes to the versioned API group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	scheduleH     Handler
	bookingH      Handler
	templateH     Handler
	calendarH     Handler
	professionalH Handler
	h             *handler.Handler
	metrics       *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type RouterConfig struct {
	RateLimit     float64
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
	// AuthEnabled gates the JWT identity middleware. The core itself
	// never authorizes; deployments that front the API with their own
	// gateway run with this off.
	AuthEnabled bool
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	scheduleH Handler,
	bookingH Handler,
	templateH Handler,
	calendarH Handler,
	professionalH Handler,
	h *handler.Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:        engine,
		auth:          auth,
		scheduleH:     scheduleH,
		bookingH:      bookingH,
		templateH:     templateH,
		calendarH:     calendarH,
		professionalH: professionalH,
		h:             h,
		metrics:       initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: 30 * time.Second}),
		middleware.RequestID(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(config.RateLimit),
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	r.setup(config.AuthEnabled)

	return r
}

func (r *Router) setup(authEnabled bool) {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	scheduling := api.Group("")
	if authEnabled {
		scheduling.Use(r.auth.Authenticate())
	}

	r.scheduleH.RegisterRoutes(scheduling)
	r.bookingH.RegisterRoutes(scheduling)
	r.templateH.RegisterRoutes(scheduling)
	r.calendarH.RegisterRoutes(scheduling)
	r.professionalH.RegisterRoutes(scheduling)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
