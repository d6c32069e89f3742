package response

import "github.com/gin-gonic/gin"

// OK writes a success envelope. Payload keys are merged next to "success",
// so callers can expose endpoint-specific top-level keys such as "booking"
// or "trains".
func OK(c *gin.Context, code int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(code, body)
}

// Error writes a failure envelope with a user-facing message.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
	})
}
