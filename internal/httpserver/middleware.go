package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	cartsvc "github.com/fullstackvinod/krishAlignUser/internal/service/cart"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const cartSessionHeader = "X-Cart-Session"

type ctxKey string

const sessionCtxKey ctxKey = "cartSession"

// requestLogger writes one structured line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		logger.Error("panic recovered", zap.Any("panic", rec), zap.String("path", c.Request.URL.Path), zap.Stack("stack"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "internal error",
		})
	})
}

type sessionLookup interface {
	Get(ctx context.Context, sessionID string) (cartsvc.View, error)
}

// cartSessionMiddleware resolves the X-Cart-Session header to a live session.
func cartSessionMiddleware(carts sessionLookup, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(cartSessionHeader))
		if id == "" {
			abortWithError(c, http.StatusBadRequest, "missing "+cartSessionHeader+" header")
			return
		}
		if _, err := carts.Get(c.Request.Context(), id); err != nil {
			if errors.Is(err, cartsvc.ErrSessionNotFound) {
				abortWithError(c, http.StatusNotFound, "cart session not found")
				return
			}
			logger.Error("lookup cart session", zap.String("session_id", id), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, "internal error")
			return
		}
		ctx := context.WithValue(c.Request.Context(), sessionCtxKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func sessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionCtxKey).(string)
	return id
}
