package response

import "github.com/gin-gonic/gin"

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error      string `json:"error"`
	Confidence string `json:"confidence,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// Rejected reports an image the classifier was not confident about.
func Rejected(c *gin.Context, httpStatus int, message, confidence string) {
	c.JSON(httpStatus, ErrorBody{
		Error:      message,
		Confidence: confidence,
	})
}
