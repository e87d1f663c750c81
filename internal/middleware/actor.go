package middleware

import (
	"github.com/gin-gonic/gin"
)

const actorHeader = "X-Actor-ID"

// defaultActorID is recorded in audit fields when no actor header is present.
const defaultActorID = "system"

// ActorID returns the identifier of the user performing the request, taken
// from the X-Actor-ID header. Authentication is handled upstream; this only
// carries the identity through for audit fields.
func ActorID(c *gin.Context) string {
	if actor := c.GetHeader(actorHeader); actor != "" {
		return actor
	}
	return defaultActorID
}
