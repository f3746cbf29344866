package handler

import (
	"errors"
	"net/http"

	"github.com/umeshkhanal/rumooz/internal/logger"
	"github.com/umeshkhanal/rumooz/internal/middleware"
	appErrors "github.com/umeshkhanal/rumooz/pkg/errors"
	"github.com/umeshkhanal/rumooz/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrEmailNotFound),
		errors.Is(err, appErrors.ErrInvalidCode),
		errors.Is(err, appErrors.ErrCodeExpired),
		errors.Is(err, appErrors.ErrInvalidOTP),
		errors.Is(err, appErrors.ErrOTPExpired),
		errors.Is(err, appErrors.ErrWrongPassword),
		errors.Is(err, appErrors.ErrUnsupportedFileType):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrAccountNotFound),
		errors.Is(err, appErrors.ErrMemberNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, appErrors.ErrEmailTaken):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrTooManyRequests):
		utils.ErrorResponse(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, appErrors.ErrNotificationFailed),
		errors.Is(err, appErrors.ErrContactMailMissing):
		logServerError(c, err)
		utils.ErrorResponse(c, http.StatusInternalServerError, errorHeadline(err))
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponseWithData(c, http.StatusBadRequest, appErr.Message, gin.H{"code": appErr.Code})
			return
		}

		logServerError(c, err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

func logServerError(c *gin.Context, err error) {
	logger.Error("Internal server error",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
}

// errorHeadline strips the transport detail wrapped behind a notification sentinel.
func errorHeadline(err error) string {
	if errors.Is(err, appErrors.ErrContactMailMissing) {
		return appErrors.ErrContactMailMissing.Error()
	}
	return appErrors.ErrNotificationFailed.Error()
}

func respondBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
}
