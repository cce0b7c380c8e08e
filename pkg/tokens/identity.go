package tokens

import "time"

// IdentityTokenClaims is the claims section of an identity token. It sits
// between the JSON payload and the IdentityToken Go struct.
type IdentityTokenClaims struct {
	Subject    string `json:"sub"`
	UserID     string `json:"uid"`
	Expiration int64  `json:"exp"`
}

// ==============================================

// IdentityToken is the signed token handed to a user at login. It carries
// the user's subject (email), durable user id and an absolute expiry.
type IdentityToken struct {
	subject    string
	userID     string
	expiration time.Time
	encoded    string
}

func (t *IdentityToken) Subject() string       { return t.subject }
func (t *IdentityToken) UserID() string        { return t.userID }
func (t *IdentityToken) Expiration() time.Time { return t.expiration }
func (t *IdentityToken) Encoded() string       { return t.encoded }

func (token *IdentityToken) intoClaims() *IdentityTokenClaims {
	claims := &IdentityTokenClaims{}
	claims.Subject = token.subject
	claims.UserID = token.userID
	claims.Expiration = token.expiration.Unix()
	return claims
}
