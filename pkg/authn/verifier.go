package authn

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"git.sr.ht/~jakintosh/idtoken/pkg/tokens"
)

var errUnauthorized = errors.New("unauthorized")

// ErrUnauthorized is returned by Verify for every rejected token. The
// underlying cause is only logged.
func ErrUnauthorized() error { return errUnauthorized }

// Identity is the verified content of an identity token.
type Identity struct {
	Subject    string
	UserID     string
	Expiration time.Time
}

type identityClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Verifier checks identity token signatures and lifetimes with the shared
// signing secret. It is safe for concurrent use.
type Verifier struct {
	secret tokens.Secret
	logger *zap.Logger
	parser *jwt.Parser
}

// NewVerifier builds a Verifier. A zero Secret panics, a nil clock reads
// the wall clock and a nil logger discards output.
func NewVerifier(
	secret tokens.Secret,
	clock tokens.Clock,
	logger *zap.Logger,
) *Verifier {
	if secret.IsZero() {
		panic("authn: NewVerifier called with a zero Secret")
	}
	if clock == nil {
		clock = tokens.SystemClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		secret: secret,
		logger: logger,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clock.Now),
		),
	}
}

// Verify accepts a token only if it is HS256 signed with the secret, has
// not reached its expiry and names both a subject and a user id.
func (v *Verifier) Verify(encToken string) (*Identity, error) {
	claims := &identityClaims{}
	if _, err := v.parser.ParseWithClaims(encToken, claims, v.keyFunc); err != nil {
		v.logger.Debug("identity token rejected", zap.Error(err))
		return nil, errUnauthorized
	}

	if claims.Subject == "" || claims.UserID == "" {
		v.logger.Debug("identity token rejected",
			zap.Bool("has_subject", claims.Subject != ""),
			zap.Bool("has_user_id", claims.UserID != ""),
		)
		return nil, errUnauthorized
	}

	return &Identity{
		Subject:    claims.Subject,
		UserID:     claims.UserID,
		Expiration: claims.ExpiresAt.Time,
	}, nil
}

func (v *Verifier) keyFunc(*jwt.Token) (any, error) {
	return v.secret.Bytes(), nil
}
