package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/models"
)

// SessionCookie is the cookie holding the URL-escaped JSON session
const SessionCookie = "user"

func setSessionCookie(w http.ResponseWriter, session models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    url.QueryEscape(string(data)),
		Path:     "/",
		MaxAge:   int(db.SessionTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

func readSessionCookie(r *http.Request) (models.Session, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return models.Session{}, false
	}
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return models.Session{}, false
	}
	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil || session.Username == "" {
		return models.Session{}, false
	}
	if _, err := models.ParseRole(string(session.Role)); err != nil {
		return models.Session{}, false
	}
	return session, true
}
