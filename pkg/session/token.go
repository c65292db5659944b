package session

import "github.com/golang-jwt/jwt/v5"

// tokenExpired reports whether the stored token is a JWT whose expiry is
// already past. The signature is never verified here; a token known to be
// expired just skips the revalidation round trip. Opaque or claim-less
// tokens return false and go through normal revalidation.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(nowFunc())
}
