package middlewares

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const sessionHeader = "X-Session-Id"

// SessionMiddleware threads the client's session id through the request
// context, assigning a fresh one when the client has none yet. The session
// exists only for non-repeat tracking and is distinct from the durable user
// identity.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			sessionID = primitive.NewObjectID().Hex()
		}
		c.Set("sessionId", sessionID)
		c.Header(sessionHeader, sessionID)
		c.Next()
	}
}
