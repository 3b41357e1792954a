// Package auth holds the credential gate: one configured (pin, userName)
// pair guards the whole application. A token is the literal concatenation
// "pin:userName" — not a cryptographic credential, acceptable only because
// the system is single-operator.
package auth

import (
	"strings"

	"github.com/kartik0x00/Budget-Formula/internal/util"
)

const bearerPrefix = "Bearer "

// Identity is the single configured operator of the application.
type Identity struct {
	Pin      string
	UserName string
}

// Gate compares submitted credentials or tokens against one injected
// identity. It holds no other state.
type Gate struct {
	identity Identity
}

func NewGate(identity Identity) *Gate {
	return &Gate{identity: identity}
}

// Login checks a submitted pin/userName pair and issues a token.
func (g *Gate) Login(pin, userName string) (string, error) {
	if pin == "" || userName == "" {
		return "", util.NewValidationError("PIN and username are required")
	}
	if pin != g.identity.Pin {
		return "", util.NewAuthenticationError("Invalid PIN")
	}
	if userName != g.identity.UserName {
		return "", util.NewAuthenticationError("Invalid user")
	}
	return pin + ":" + userName, nil
}

// Authenticate validates an Authorization header value ("Bearer <token>")
// and yields the identity it encodes.
func (g *Gate) Authenticate(authHeader string) (Identity, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return Identity{}, util.NewAuthenticationError("Missing or invalid authorization header")
	}
	return g.Check(strings.TrimPrefix(authHeader, bearerPrefix))
}

// Check validates a bare token.
func (g *Gate) Check(token string) (Identity, error) {
	pin, userName, ok := strings.Cut(token, ":")
	if !ok || pin == "" || userName == "" {
		return Identity{}, util.NewAuthenticationError("Invalid token format")
	}
	if pin != g.identity.Pin {
		return Identity{}, util.NewAuthenticationError("Invalid PIN")
	}
	if userName != g.identity.UserName {
		return Identity{}, util.NewAuthenticationError("Invalid user")
	}
	return Identity{Pin: pin, UserName: userName}, nil
}

// Verify is Check as a boolean, for session restoration paths that only
// care whether a stored token is still usable.
func (g *Gate) Verify(token string) bool {
	_, err := g.Check(token)
	return err == nil
}
