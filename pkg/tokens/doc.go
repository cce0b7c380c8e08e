// Package tokens provides identity token issuing and inspection for the
// idtoken login flow.
//
// Tokens are HS256 (HMAC with SHA-256) signed JSON Web Tokens carrying a
// fixed claim vocabulary:
//
//   - sub: the user's email (subject)
//   - uid: the user's durable internal identifier
//   - exp: absolute expiry, in seconds since the Unix epoch
//
// The package has two roles:
//
//   - Server: issues tokens using the shared signing secret
//   - Extractors: read claims and expiry from any token, without the secret
//
// Signature verification for authorization lives in package authn.
//
// # Server Usage (Issuing Tokens)
//
// The login endpoint builds a Secret once at startup and issues a token
// after credentials check out:
//
//	secret, err := tokens.NewSecret(key) // at least 32 bytes
//	if err != nil {
//	    log.Fatal(err)
//	}
//	issuer := tokens.InitServer(secret, tokens.SystemClock())
//
//	// Issue a token valid for one hour
//	token, err := issuer.IssueIdentityToken("alice@example.com", "42")
//	if err != nil {
//	    return err
//	}
//	tokenString := token.Encoded()
//
// # Client Usage (Inspecting Tokens)
//
// A client that only displays who is logged in needs no secret:
//
//	if email, ok := tokens.ExtractSubject(tokenString); ok {
//	    fmt.Printf("logged in as %s\n", email)
//	}
//	if tokens.IsExpired(tokenString, tokens.SystemClock()) {
//	    // prompt for a new login
//	}
//
// ExtractSubject and ExtractUserID report absence (false) for any token
// they can't read. IsExpired is the opposite: a token whose expiry can't be
// read is expired.
//
// # Error Handling
//
// ParseClaims exposes the individual failure modes for callers that need
// them:
//
//	claims, err := tokens.ParseClaims(tokenString)
//	switch {
//	case errors.Is(err, tokens.ErrNotThreeParts()):
//	    // not header.payload.signature
//	case errors.Is(err, tokens.ErrInvalidEncoding()):
//	    // a segment isn't base64url
//	case errors.Is(err, tokens.ErrMalformedPayload()):
//	    // payload isn't a JSON object
//	}
//	uid, err := claims.StringClaim(tokens.ClaimUserID)
//	if errors.Is(err, tokens.ErrMissingClaim()) {
//	    // no uid in the payload
//	}
package tokens
