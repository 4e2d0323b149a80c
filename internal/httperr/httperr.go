package httperr

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

var messages = map[string]string{
	"not_found":             "Resource not found.",
	"restaurant_not_found":  "Restaurant not found.",
	"reservation_not_found": "Reservation not found.",
	"slot_unavailable":      "No tables available for the selected time slot.",
	"invalid_transition":    "This status change is not allowed.",
	"already_cancelled":     "Reservation is already cancelled.",
	"token_expired":         "Management link has expired.",
	"access_denied":         "Access denied.",
	"invalid_date_or_time":  "Invalid date or time.",
	"invalid_party_size":    "Invalid party size.",
	"booking_busy":          "Too many concurrent bookings, please retry.",
}

// StatusFor maps a business code (or its base category) onto an HTTP status.
func StatusFor(err error) int {
	switch {
	case IsBusiness(err, "slot_unavailable"):
		return http.StatusConflict
	case IsBusiness(err, "invalid_transition"):
		return http.StatusBadRequest
	case IsBusiness(err, "token_expired"):
		return http.StatusGone
	case IsBusiness(err, "access_denied"):
		return http.StatusForbidden
	case IsBusiness(err, "booking_busy"):
		return http.StatusServiceUnavailable
	}

	code := CodeOf(err)
	switch {
	case code == "":
		return http.StatusInternalServerError
	case strings.HasSuffix(code, "not_found"):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// WriteBusiness renders err. Anything that is not a BusinessError is logged and
// hidden behind fallbackCode.
func WriteBusiness(c *gin.Context, err error, fallbackCode string) {
	code := CodeOf(err)
	if code == "" {
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		Internal(c, fallbackCode, "Unexpected error.")
		return
	}

	msg, ok := messages[code]
	if !ok {
		msg = code
	}
	Write(c, StatusFor(err), code, msg)
}
