package response

import "github.com/gin-gonic/gin"

const (
	CodeOK             = 0
	CodeBadRequest     = 40000
	CodeIndexNotReady  = 40010
	CodeNotFound       = 40400
	CodeInternalServer = 50000
	CodeFetchFailed    = 50010
	CodeModelCall      = 50020
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// OK writes data as the response body unchanged.
func OK(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, ErrorBody{
		Code:  code,
		Error: message,
	})
}
