package response

import "github.com/gin-gonic/gin"

// Every handler answers with this envelope: either {success:true, data:...}
// or {success:false, error:{code, message}}. Callers check the error field;
// nothing crosses this boundary as a panic or bare status.

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
