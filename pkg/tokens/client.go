package tokens

// The functions in this file inspect a token without its secret, for
// display and bookkeeping. They never verify the signature, so nothing
// they return may be used for authorization.

// ExtractSubject returns the token's "sub" claim. The bool is false when
// the token can't be parsed or carries no string subject.
func ExtractSubject(tokenStr string) (string, bool) {
	return extractString(tokenStr, ClaimSubject)
}

// ExtractUserID returns the token's "uid" claim, with the same rules as
// ExtractSubject.
func ExtractUserID(tokenStr string) (string, bool) {
	return extractString(tokenStr, ClaimUserID)
}

// IsExpired reports whether the token's "exp" instant is at or before the
// clock's current time. Any failure to read "exp", including a token that
// doesn't parse at all, counts as expired. A nil clock reads the wall
// clock.
func IsExpired(tokenStr string, clock Clock) bool {
	claims, err := ParseClaims(tokenStr)
	if err != nil {
		return true
	}
	exp, err := claims.Int64Claim(ClaimExpiration)
	if err != nil {
		return true
	}
	// compared in whole seconds; time.Unix overflows for exp near MaxInt64
	return exp <= clockOrSystem(clock).Now().Unix()
}

func extractString(tokenStr string, name string) (string, bool) {
	claims, err := ParseClaims(tokenStr)
	if err != nil {
		return "", false
	}
	value, err := claims.StringClaim(name)
	if err != nil {
		return "", false
	}
	return value, true
}
