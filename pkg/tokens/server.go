package tokens

import (
	"fmt"
	"time"
)

// Issuer mints identity tokens after a successful login.
type Issuer interface {
	IssueIdentityToken(subject string, userID string) (*IdentityToken, error)
}

// InitServer builds the issuing side around the shared signing secret.
// A zero Secret is a startup configuration defect and panics. A nil clock
// falls back to SystemClock.
func InitServer(
	secret Secret,
	clock Clock,
) Issuer {
	if secret.IsZero() {
		panic("tokens: InitServer called with a zero Secret")
	}
	return &Server{
		secret:   secret,
		clock:    clockOrSystem(clock),
		lifetime: DefaultLifetime,
	}
}

// Server implements Issuer. It holds the signing secret and is safe for
// concurrent use. Create a Server instance using InitServer.
type Server struct {
	secret   Secret
	clock    Clock
	lifetime time.Duration
}

//
// Issuer interface

func (server *Server) IssueIdentityToken(
	subject string,
	userID string,
) (*IdentityToken, error) {
	if subject == "" {
		return nil, ErrEmptySubject()
	}
	if userID == "" {
		return nil, ErrEmptyUserID()
	}

	now := server.clock.Now()
	token := &IdentityToken{
		subject: subject,
		userID:  userID,
		// exp is whole seconds on the wire
		expiration: time.Unix(now.Add(server.lifetime).Unix(), 0),
	}

	claims := token.intoClaims()
	encodedToken, err := encodeToken(claims, server.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to encode identity token: %v", err)
	}
	token.encoded = encodedToken

	return token, nil
}
