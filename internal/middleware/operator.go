package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// operatorIDKey is the key used to store the acting operator's ID in the
// request context.
const operatorIDKey = contextKey("operatorID")

// OperatorHeader is the header the authenticating frontend forwards to name
// the operator performing the request. Authentication itself happens
// upstream; this service only records attribution for audit fields.
const OperatorHeader = "X-Operator-ID"

// RequireOperator extracts the operator ID from the request header and makes
// it available to handlers. Requests without it are rejected, since every
// write records who performed it.
func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		operatorID := c.GetHeader(OperatorHeader)
		if operatorID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + OperatorHeader + " header"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), operatorIDKey, operatorID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetOperatorIDFromContext retrieves the acting operator's ID from the Gin
// context. It returns the ID and a boolean indicating if it was found.
func GetOperatorIDFromContext(c *gin.Context) (string, bool) {
	operatorID, ok := c.Request.Context().Value(operatorIDKey).(string)
	if !ok || operatorID == "" {
		return "", false
	}
	return operatorID, true
}
