package auth

import (
	"fmt"
	"net/http"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	gsessions "github.com/gorilla/sessions"
)

// SessionName is the cookie carrying the opaque session id
const SessionName = "recept_session"

// ContextIdentityKey holds the *Identity of the signed-in user in the gin context
const ContextIdentityKey = "identity"

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

const (
	keyUserID    = "user_id"
	keyUserName  = "user_name"
	keyUserEmail = "user_email"
	keyUserRole  = "user_role"
)

// Identity is the snapshot of the signed-in user kept in the server-side session
type Identity struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

// NewSessionStore keeps session data in process memory; only the id travels in the cookie
func NewSessionStore(secret, cookiePath string, secure bool) sessions.Store {
	store := memstore.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     cookiePath,
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// SessionMiddleware attaches the session to every request
func SessionMiddleware(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(SessionName, store)
}

// SignIn stores the identity snapshot in a session with a freshly issued id.
// Any session the visitor carried before logging in is deleted from the store.
func SignIn(c *gin.Context, identity Identity) error {
	session := sessions.Default(c)
	if err := rotate(session, c); err != nil {
		return err
	}
	session.Set(keyUserID, identity.ID)
	session.Set(keyUserName, identity.Name)
	session.Set(keyUserEmail, identity.Email)
	session.Set(keyUserRole, identity.Role)
	return session.Save()
}

// rotate expires the current session id and leaves an empty session that gets a new id on save
func rotate(session sessions.Session, c *gin.Context) error {
	holder, ok := session.(interface{ Session() *gsessions.Session })
	if !ok {
		return fmt.Errorf("session rotation unsupported for %T", session)
	}
	gs := holder.Session()
	if gs.ID == "" {
		return nil
	}

	options := *gs.Options
	expired := options
	expired.MaxAge = -1
	gs.Options = &expired
	if err := gs.Save(c.Request, c.Writer); err != nil {
		return fmt.Errorf("expire session: %w", err)
	}

	gs.ID = ""
	gs.IsNew = true
	gs.Options = &options
	gs.Values = make(map[interface{}]interface{})
	return nil
}

// SignOut destroys the session; calling it without a session is a no-op
func SignOut(c *gin.Context, cookiePath string) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: cookiePath, MaxAge: -1})
	return session.Save()
}

// IdentityFromSession returns nil for anonymous visitors
func IdentityFromSession(c *gin.Context) *Identity {
	session := sessions.Default(c)
	id, ok := session.Get(keyUserID).(uint)
	if !ok || id == 0 {
		return nil
	}
	identity := &Identity{ID: id}
	identity.Name, _ = session.Get(keyUserName).(string)
	identity.Email, _ = session.Get(keyUserEmail).(string)
	identity.Role, _ = session.Get(keyUserRole).(string)
	return identity
}

// Current returns the identity attached to this request, or nil
func Current(c *gin.Context) *Identity {
	value, exists := c.Get(ContextIdentityKey)
	if !exists {
		return nil
	}
	identity, _ := value.(*Identity)
	return identity
}

// AddFlash queues a one-time notice for the next rendered page
func AddFlash(c *gin.Context, kind, message string) error {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	return session.Save()
}

// PopFlashes consumes the pending success and error notices
func PopFlashes(c *gin.Context) (success, failure []string, err error) {
	session := sessions.Default(c)
	success = toStrings(session.Flashes(FlashSuccess))
	failure = toStrings(session.Flashes(FlashError))
	if len(success) == 0 && len(failure) == 0 {
		return nil, nil, nil
	}
	return success, failure, session.Save()
}

func toStrings(values []interface{}) []string {
	var out []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
