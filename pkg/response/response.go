package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the API's failure envelope: {"error": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
}

// BadRequest sends 400 with an error body.
func BadRequest(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: err})
}

// NotFound sends 404 with an error body.
func NotFound(c *gin.Context, err string) {
	c.JSON(http.StatusNotFound, ErrorBody{Error: err})
}

// Internal sends 500 with an error body.
func Internal(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: err})
}
