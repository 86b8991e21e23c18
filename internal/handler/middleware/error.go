package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"cinema-seat-hold/internal/handler/httperr"
	"cinema-seat-hold/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLinesLogged = 12

// ErrorHandler writes the last public error when a handler aborted without a body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		writeInternalError(c)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				slog.Error("recovered from panic",
					"error", err.Error(),
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
					"stack", errs.ExtractStackLines(errs.Wrap(err, "panic"), stackLinesLogged),
				)
				writeInternalError(c)
				c.Abort()
			}
		}()
		c.Next()
	}
}

func writeInternalError(c *gin.Context) {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Message = "Internal server error"
	c.JSON(http.StatusInternalServerError, resp)
}
