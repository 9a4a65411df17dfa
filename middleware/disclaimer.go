// middleware/disclaimer.go
package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const DisclaimerHeader = "X-Disclaimer-Accepted"

const DisclaimerText = "This assistant is for informational and educational purposes only. " +
	"It is NOT a substitute for professional medical advice, diagnosis, or treatment. " +
	"Always consult qualified healthcare providers for medical concerns. " +
	"In life-threatening emergencies, call your local emergency number immediately."

// RequireDisclaimer rejects requests that have not acknowledged the medical
// disclaimer via the X-Disclaimer-Accepted header. The WebSocket route may
// pass the flag as the disclaimer_accepted query parameter instead.
func RequireDisclaimer() gin.HandlerFunc {
	return func(c *gin.Context) {
		value := c.GetHeader(DisclaimerHeader)
		if value == "" {
			value = c.Query("disclaimer_accepted")
		}

		accepted, err := strconv.ParseBool(value)
		if err != nil || !accepted {
			c.AbortWithStatusJSON(http.StatusPreconditionRequired, gin.H{
				"error":      "Medical disclaimer not accepted",
				"details":    "Set the " + DisclaimerHeader + " header to true to continue",
				"disclaimer": DisclaimerText,
			})
			return
		}

		c.Next()
	}
}
