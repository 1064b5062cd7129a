// Package httpapi exposes the authentication service over HTTP using gin.
// Every response, success or failure, is wrapped in the same envelope so
// clients can branch on a single "ok" field.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/logging"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// envelope is the uniform response shape. Status mirrors the HTTP status
// code so clients reading the body alone see the same value.
type envelope struct {
	OK     bool       `json:"ok"`
	Status int        `json:"status"`
	Data   any        `json:"data,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

func writeSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{OK: true, Status: status, Data: data})
}

// writeError maps any error onto the envelope via the common error
// taxonomy. Unexpected and storage failures are logged with their cause;
// the client only ever sees the taxonomy code and message.
func writeError(c *gin.Context, log logging.Logger, err error) {
	ae := common.FromError(err)
	status := ae.Kind.HTTPStatus()

	if status >= 500 {
		log.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"code", ae.Kind.Code(),
			"error", ae.Error(),
		)
	}

	c.JSON(status, envelope{OK: false, Status: status, Error: &errorBody{
		Code:    ae.Kind.Code(),
		Message: ae.Message,
		Details: ae.Details,
	}})
}
