package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Config holds application configuration
type Config struct {
	Host              string
	Port              string
	LogLevel          string
	LogFormat         string
	QueueSize         int
	JobTimeout        time.Duration
	RelaxedValidation bool
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	JobTTL            time.Duration
}

// NewRouter builds the gin engine with logging, recovery and all routes.
func NewRouter(ctrl *Controller, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(log), gin.Recovery())
	r.SetHTMLTemplate(pageTemplate)
	SetupRoutes(r, ctrl)
	return r
}

func SetupRoutes(r *gin.Engine, ctrl *Controller) {
	r.GET("/", func(c *gin.Context) { HandleIndex(c, ctrl) })
	r.GET("/health", HandleHealth)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/selection", func(c *gin.Context) { HandleGetSelection(c, ctrl) })
		apiGroup.PUT("/selection", func(c *gin.Context) { HandleSelect(c, ctrl) })
		apiGroup.POST("/trim", func(c *gin.Context) { HandleTrim(c, ctrl) })
		apiGroup.GET("/jobs/:id", func(c *gin.Context) { HandleJob(c, ctrl) })
	}
}

// RequestLogger logs every request through logrus.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.Warn(c.Errors.String())
			return
		}
		entry.Debug("HTTP request")
	}
}
