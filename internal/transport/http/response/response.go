package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the payload of every failed request.
type ErrorBody struct {
	Detail string `json:"detail"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Error(c *gin.Context, httpStatus int, detail string) {
	c.JSON(httpStatus, ErrorBody{Detail: detail})
}
