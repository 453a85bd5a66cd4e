package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"quizarena/pkg/logger"
	"quizarena/sessions"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie    = "quiz_session"
	sessionKey       = "session"
	sessionIDKey     = "session_id"
	cookieMaxAgeSecs = 30 * 24 * 60 * 60
)

// Session loads the caller's session from the store (creating a fresh one
// and a cookie on first contact) and saves it back after the handler ran.
// Saves are last-write-wins; concurrent requests in one session are not
// coordinated.
func Session(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			id = newSessionID()
			c.SetCookie(SessionCookie, id, cookieMaxAgeSecs, "/", "", false, true)
		}

		session, err := store.Get(c.Request.Context(), id)
		if err != nil {
			logger.Warn("failed to load session", "session_id", id, "error", err)
		}
		if session == nil {
			session = sessions.New()
		}

		c.Set(sessionKey, session)
		c.Set(sessionIDKey, id)

		c.Next()

		if err := store.Save(c.Request.Context(), id, session); err != nil {
			logger.Error("failed to save session", "session_id", id, "error", err)
		}
	}
}

// GetSession returns the request's session; the Session middleware always
// sets one.
func GetSession(c *gin.Context) *sessions.Session {
	value, exists := c.Get(sessionKey)
	if !exists {
		return sessions.New()
	}
	return value.(*sessions.Session)
}

// RequireUser guards the HTML pages that need an authenticated session.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if !session.IsAuthenticated() {
			session.AddFlash("warning", "Please log in first.")
			c.Redirect(http.StatusFound, "/login/")
			c.Abort()
			return
		}
		c.Next()
	}
}

func newSessionID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
