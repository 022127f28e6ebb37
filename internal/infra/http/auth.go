package http

import (
	"log"
	"net/http"

	"biblio/internal/domain"

	"github.com/gin-gonic/gin"
)

// credentialHeader carries the access token. Exactly one value is
// expected; absent or repeated headers are treated as no credential.
const credentialHeader = "library-token"

const identityKey = "identity"

// guarded wraps a handler with the access check for the named
// operation. Every denial produces the same 401 body so callers cannot
// distinguish a bad token from an insufficient role; the precise reason
// goes to the log only.
func (s *Server) guarded(operation string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		credentials := c.Request.Header.Values(credentialHeader)
		decision, err := s.guard.Check(c.Request.Context(), operation, credentials)
		if err != nil {
			log.Printf("guard: op=%s principal lookup failed: %v", operation, err)
			writeErrorCode(c, http.StatusInternalServerError, "DEPENDENCY_FAILURE", "access check unavailable")
			c.Abort()
			return
		}
		if !decision.Allowed {
			log.Printf("guard: op=%s stage=%s reason=%s detail=%q", operation, decision.Reason.Stage(), decision.Reason, decision.Detail)
			writeErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
			c.Abort()
			return
		}
		if decision.Identity != nil {
			c.Set(identityKey, *decision.Identity)
		}
		handler(c)
	}
}

// getIdentity returns the caller identity set by guarded. The second
// return is false on public operations reached without a credential.
func getIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}
