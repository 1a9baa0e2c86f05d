package auth

import "context"

// Identity is the authenticated caller attached to each request. It carries
// the minimal display data pipelines need so they never re-query the full
// user record.
type Identity struct {
	ID        string
	Username  string
	AvatarURL string
}

// Authenticator resolves a bearer token to an identity. Credential storage,
// password hashing and token issuance live outside this service; this port
// is the only contact surface with them.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}
