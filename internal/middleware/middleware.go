package middleware

import (
	"time"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	// RequestIDHeader is echoed back on every response
	RequestIDHeader = "X-Request-ID"
	// ContextRequestIDKey holds the request id in the gin context
	ContextRequestIDKey = "requestID"
	// ContextBasePathKey holds the route prefix for building links and redirects
	ContextBasePathKey = "basePath"
	// ContextLoggerKey holds a *log.Entry carrying the request id
	ContextLoggerKey = "logger"
)

// RequestID assigns an id to every request, reusing a sane incoming X-Request-ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Set(ContextLoggerKey, log.WithField("request_id", id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger writes one structured line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		entry := logger(c).WithFields(log.Fields{
			"method":    c.Request.Method,
			"path":      path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		if identity := auth.Current(c); identity != nil {
			entry = entry.WithField("user_id", identity.ID)
		}
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request failed")
		case len(c.Errors) > 0:
			entry.WithField("errors", c.Errors.String()).Warn("Request completed with errors")
		default:
			entry.Info("Request completed")
		}
	}
}

// LoadIdentity copies the session's identity snapshot into the request context
func LoadIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity := auth.IdentityFromSession(c); identity != nil {
			c.Set(auth.ContextIdentityKey, identity)
		}
		c.Next()
	}
}

// BasePath makes the route prefix available to handlers and views
func BasePath(basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextBasePathKey, basePath)
		c.Next()
	}
}

// Logger returns the request-scoped log entry
func Logger(c *gin.Context) *log.Entry {
	return logger(c)
}

func logger(c *gin.Context) *log.Entry {
	if value, exists := c.Get(ContextLoggerKey); exists {
		if entry, ok := value.(*log.Entry); ok {
			return entry
		}
	}
	return log.NewEntry(log.StandardLogger())
}
