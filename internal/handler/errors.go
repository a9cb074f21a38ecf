package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VitaminP8/yatube/internal/apperr"
	"github.com/VitaminP8/yatube/internal/middleware"
)

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindThrottled:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError пишет тело ошибки; неизвестные ошибки логируются и становятся 500
func respondError(c *gin.Context, log *zap.Logger, err error) {
	_ = c.Error(err)

	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind != apperr.KindInternal {
		c.AbortWithStatusJSON(statusFor(appErr.Kind), appErr.Fields)
		return
	}

	log.Error("request failed",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", middleware.RequestIDFromContext(c)),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		apperr.MessageField: []string{apperr.MsgInternal},
	})
}

// NotFound и MethodNotAllowed отдают то же тело, что и остальные ошибки
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, apperr.NotFound(apperr.MsgNotFound).Fields)
}

func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{
		apperr.MessageField: []string{apperr.MsgMethodNotAllowed},
	})
}
