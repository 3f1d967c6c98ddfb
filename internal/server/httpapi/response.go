// Package httpapi is the HTTP transport: gin routes, the response
// envelope, and the access-control middleware evaluated before protected
// handlers run.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindwell/journal/internal/common"
)

// Response is the uniform envelope: every reply carries the status code in
// the body as well. Errors nest under data.error.
type Response struct {
	Status int `json:"status"`
	Data   any `json:"data"`
}

var errInvalidBody = errors.New("invalid request body")

func respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Status: http.StatusOK, Data: data})
}

// respondError maps the error taxonomy onto status codes and aborts the
// request. Anything unrecognized is a 500 with a generic message so
// internal details never reach the client.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	payload := gin.H{"message": "an error was encountered"}

	var nf *common.NotFoundError
	switch {
	case errors.As(err, &nf):
		status = http.StatusNotFound
		payload = gin.H{"documentId": nf.Key, "message": "document not found"}
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
		payload = gin.H{"message": "document not found"}
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		status = http.StatusUnauthorized
		payload = gin.H{"message": "unauthorized"}
	case errors.Is(err, common.ErrForbidden):
		status = http.StatusForbidden
		payload = gin.H{"message": "forbidden"}
	case errors.Is(err, common.ErrDuplicate):
		status = http.StatusConflict
		payload = gin.H{"message": "duplicate value"}
	case errors.Is(err, common.ErrEmptyPatch), errors.Is(err, errInvalidBody):
		status = http.StatusBadRequest
		payload = gin.H{"message": "invalid request"}
	}

	c.AbortWithStatusJSON(status, Response{Status: status, Data: gin.H{"error": payload}})
}
