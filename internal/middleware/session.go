package middleware

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/who-owns-this/internal/constants"
	"github.com/yukikurage/who-owns-this/internal/dto"
)

// ErrNoSession is returned by LoadIdentity when no readable record is stored.
var ErrNoSession = errors.New("no session")

// SessionOptions configure the session store.
type SessionOptions struct {
	Secret    string
	RedisAddr string
	Secure    bool
}

// NewSessionStore returns a Redis backed store when RedisAddr is set and a
// signed cookie store otherwise.
func NewSessionStore(opts SessionOptions) (sessions.Store, error) {
	var store sessions.Store
	if opts.RedisAddr != "" {
		// pool size 10, default user, no password
		rs, err := redisStore.NewStore(10, "tcp", opts.RedisAddr, "", "", []byte(opts.Secret))
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(opts.Secret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: 2, // Lax
	})
	return store, nil
}

// Sessions attaches the session named constants.SessionCookieName.
func Sessions(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(constants.SessionCookieName, store)
}

// SaveIdentity stores the identity record of the current client. It is a
// convenience cache for the client and never used to authorize requests.
func SaveIdentity(c *gin.Context, identity dto.SessionDTO) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKey, string(raw))
	return session.Save()
}

// LoadIdentity returns the stored identity record, or ErrNoSession when
// nothing usable is stored.
func LoadIdentity(c *gin.Context) (dto.SessionDTO, error) {
	var identity dto.SessionDTO

	raw, ok := sessions.Default(c).Get(constants.SessionKey).(string)
	if !ok || raw == "" {
		return identity, ErrNoSession
	}
	if err := json.Unmarshal([]byte(raw), &identity); err != nil || identity.MemberID == "" {
		return dto.SessionDTO{}, ErrNoSession
	}
	return identity, nil
}

// ClearIdentity removes the stored identity record.
func ClearIdentity(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
