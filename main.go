package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"pdf_eraser/api"
	"pdf_eraser/jobs"
	"pdf_eraser/pdf"
)

const (
	// DefaultHost keeps the UI on the local machine
	DefaultHost = "127.0.0.1"

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultJobTimeout bounds a single trim
	DefaultJobTimeout = 2 * time.Minute

	// DefaultJobTTL is how long finished jobs stay in redis
	DefaultJobTTL = 24 * time.Hour

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 15 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout
	ServerWriteTimeout = 15 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	config := loadConfig()
	log := newLogger(config)

	trimmer := pdf.NewTrimmer(log, pdf.Options{RelaxedValidation: config.RelaxedValidation})

	store, closeStore, err := newStore(config, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to set up job store")
	}
	defer closeStore()

	var ctrl *api.Controller
	dispatcher := jobs.NewDispatcher(trimmer, store, log, jobs.Config{
		QueueSize:  config.QueueSize,
		JobTimeout: config.JobTimeout,
		OnComplete: func(job jobs.Job) { ctrl.JobFinished(job) },
	})
	ctrl = api.NewController(trimmer, dispatcher, log)
	dispatcher.Start()

	if log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(ctrl, log)

	// Create HTTP server with timeout settings
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", config.Host, config.Port),
		Handler:      r,
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.WithFields(logrus.Fields{
			"addr":        srv.Addr,
			"queue_size":  config.QueueSize,
			"job_timeout": config.JobTimeout.String(),
			"relaxed":     config.RelaxedValidation,
		}).Infof("Open http://%s in a browser", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	if err := dispatcher.Stop(ctx); err != nil {
		log.WithError(err).Warn("Running job cancelled during shutdown")
	}

	log.Info("Server exited gracefully")
}

func loadConfig() *api.Config {
	return &api.Config{
		Host:              getEnv("HOST", DefaultHost),
		Port:              getEnv("PORT", DefaultPort),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		QueueSize:         getEnvInt("QUEUE_SIZE", jobs.DefaultQueueSize),
		JobTimeout:        getEnvDuration("JOB_TIMEOUT", DefaultJobTimeout),
		RelaxedValidation: getEnvBool("RELAXED_VALIDATION", false),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		JobTTL:            getEnvDuration("JOB_TTL", DefaultJobTTL),
	}
}

func newLogger(config *api.Config) *logrus.Logger {
	log := logrus.New()
	if strings.EqualFold(config.LogFormat, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		log.WithField("level", config.LogLevel).Warn("Unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// newStore picks redis when REDIS_ADDR is set and process memory otherwise.
func newStore(config *api.Config, log *logrus.Logger) (jobs.Store, func(), error) {
	if config.RedisAddr == "" {
		log.Debug("Keeping jobs in memory")
		return jobs.NewMemoryStore(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := jobs.ConnectRedis(ctx, jobs.RedisOptions{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}
	log.WithField("addr", config.RedisAddr).Info("Redis connected")

	return jobs.NewRedisStore(client, config.JobTTL), func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("Failed to close redis client")
		}
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
