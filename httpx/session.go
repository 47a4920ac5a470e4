package httpx

import (
	"context"
	"encoding/gob"
	"net/http"

	"github.com/antonlindstrom/pgstore"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v5"
)

const sessionKey = "session"
const userSessionKey = "user"
const TemplContextSessionKey = "session"

// UserSessionData is what a logged-in visitor carries between requests.
// AccessToken is the listings API bearer token issued at log-in, sealed with
// helpers.SealToken.
type UserSessionData struct {
	Email       string
	AccessToken string
}

func init() {
	gob.Register(&UserSessionData{})
}

func sessionOptions(secure bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewPostgresSessionStore keeps sessions in the sessions table of the database at dbURL.
func NewPostgresSessionStore(dbURL string, key []byte, secure bool) (*pgstore.PGStore, error) {
	store, err := pgstore.NewPGStore(dbURL, key)
	if err != nil {
		return nil, err
	}

	store.Options = sessionOptions(secure)
	return store, nil
}

// NewCookieSessionStore keeps sessions in signed cookies. Used when no database is configured.
func NewCookieSessionStore(key []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options = sessionOptions(secure)
	return store
}

func GetUserSessionData(c *echo.Context) *UserSessionData {
	sess, err := session.Get(sessionKey, c)
	if err != nil {
		return nil
	}

	userData := sess.Values[userSessionKey]
	if userData == nil {
		return nil
	}

	userDataValue, ok := userData.(*UserSessionData)
	if !ok {
		return nil
	}

	return userDataValue
}

func SetUserSessionData(c *echo.Context, userData *UserSessionData) error {
	sess, err := session.Get(sessionKey, c)
	if err != nil {
		return err
	}

	sess.Values[userSessionKey] = userData

	return sess.Save(c.Request(), c.Response())
}

func ClearUserSessionData(c *echo.Context) error {
	sess, err := session.Get(sessionKey, c)
	if err != nil {
		return err
	}

	delete(sess.Values, userSessionKey)
	sess.Options.MaxAge = -1

	return sess.Save(c.Request(), c.Response())
}

// UserFromContext returns the session data put on the request context by the
// auth middleware, or nil for anonymous visitors.
func UserFromContext(ctx context.Context) *UserSessionData {
	userData, ok := ctx.Value(TemplContextSessionKey).(*UserSessionData)
	if !ok {
		return nil
	}

	return userData
}

const TemplContextCSRFKey = "csrf"

// CSRFFromContext returns the CSRF token put on the request context for forms.
func CSRFFromContext(ctx context.Context) string {
	token, _ := ctx.Value(TemplContextCSRFKey).(string)
	return token
}
