package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/fyyur/internal/auth"
)

// AuthHandler starts and ends editor sessions.
type AuthHandler struct {
	editor *auth.Editor
	secure bool // set the Secure cookie flag (HTTPS deployments)
	logger *slog.Logger
}

func NewAuthHandler(editor *auth.Editor, secure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{editor: editor, secure: secure, logger: logger}
}

type loginRequest struct {
	Password string `json:"password" form:"password"`
}

// HandleLogin checks the editor password and sets the session cookie.
//
// HTTP: POST /auth/login
// BODY: {"password": "..."}
//
// The cookie is HttpOnly (scripts cannot read it) and SameSite=Lax (not
// sent on cross-site POSTs).
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeRequest(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.editor.Login(req.Password)
	if err != nil {
		h.logger.Warn("editor login failed", slog.String("remote", r.RemoteAddr))
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.editor.Tokens().TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("editor logged in", slog.String("remote", r.RemoteAddr))
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged in"})
}

// HandleLogout deletes the session cookie. The JWT itself stays valid
// until it expires, but the browser no longer sends it.
//
// HTTP: POST /auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
