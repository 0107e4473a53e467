// Package mockauth resuelve cualquier token no vacío a una identidad fija.
// No hay usuarios reales: todo el que manda Authorization es el mismo cliente.
package mockauth

import (
	"context"
	"errors"
	"strings"

	"petshop/internal/ports/auth"
)

const UserID = "mock-user-id"

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier.
type Verifier struct {
	userID string
}

// NewVerifier: userID vacío => "mock-user-id".
func NewVerifier(userID string) *Verifier {
	if strings.TrimSpace(userID) == "" {
		userID = UserID
	}
	return &Verifier{userID: userID}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return auth.Claims{}, ErrTokenEmpty
	}
	return auth.Claims{UserID: v.userID}, nil
}
