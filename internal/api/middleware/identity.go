package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextKeyClientID  = "client_id"
	ContextKeyNewClient = "new_client"

	HeaderClientID = "X-Client-ID"
	ClientCookie   = "studio_client"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// Client ids become database keys and log fields; keep them boring
var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// AnonymousClient identifies clients when AUTH_MODE=none. The id comes from the
// X-Client-ID header, then the studio cookie; new clients get a fresh uuid
// which is handed back in the cookie and the X-Client-ID response header.
func AnonymousClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetHeader(HeaderClientID)
		if !validClientID(clientID) {
			clientID = ""
			if cookie, err := c.Cookie(ClientCookie); err == nil && validClientID(cookie) {
				clientID = cookie
			}
		}
		if clientID == "" {
			clientID = uuid.NewString()
			c.Set(ContextKeyNewClient, true)
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(ClientCookie, clientID, clientCookieMaxAge, "/", "", false, true)
		c.Header(HeaderClientID, clientID)
		c.Set(ContextKeyClientID, clientID)

		c.Next()
	}
}

// GetClientID returns the client id set by AnonymousClient or GatewayAuth
func GetClientID(c *gin.Context) (string, bool) {
	clientID := c.GetString(ContextKeyClientID)
	return clientID, clientID != ""
}

// IsNewClient reports whether AnonymousClient minted the id on this request
func IsNewClient(c *gin.Context) bool {
	return c.GetBool(ContextKeyNewClient)
}

func validClientID(id string) bool {
	return clientIDPattern.MatchString(id)
}
