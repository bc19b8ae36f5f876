package ports

// TokenClaims is the identity payload baked into a session token. Email is
// the only claim the access layer relies on; the role is deliberately not
// embedded and is re-read from the directory store per privileged request.
type TokenClaims struct {
	Email string
	Name  string
}

// TokenService issues signed session tokens. Verification lives in the auth
// middleware, which shares the signing secret.
type TokenService interface {
	Issue(claims TokenClaims) (string, error)
}
