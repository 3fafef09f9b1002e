package auth

import (
	"fmt"

	"github.com/sakif/fyyur/internal/apperror"
)

// EditorSubject is the JWT subject of every editor session. There is one
// shared editor identity, not per-user accounts.
const EditorSubject = "editor"

// Editor checks the editor password and issues session tokens.
type Editor struct {
	hash      string
	passwords *PasswordService
	tokens    *TokenService
}

// NewEditor wires the configured bcrypt hash to a token service.
func NewEditor(passwordHash string, passwords *PasswordService, tokens *TokenService) (*Editor, error) {
	if !ValidHash(passwordHash) {
		return nil, fmt.Errorf("auth: editor password hash is not a bcrypt hash")
	}
	return &Editor{hash: passwordHash, passwords: passwords, tokens: tokens}, nil
}

// Tokens exposes the token service for RequireEditor and cookie lifetimes.
func (e *Editor) Tokens() *TokenService {
	return e.tokens
}

// Login returns a signed session token when password matches.
// A wrong password is apperror.Unauthorized.
func (e *Editor) Login(password string) (string, error) {
	if err := e.passwords.Verify(e.hash, password); err != nil {
		return "", apperror.Unauthorized("invalid editor password")
	}

	token, err := e.tokens.Generate(EditorSubject)
	if err != nil {
		return "", fmt.Errorf("issuing editor token: %w", err)
	}
	return token, nil
}
