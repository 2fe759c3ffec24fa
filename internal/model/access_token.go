package model

import "time"

// AccessToken is a minted, stateless bearer credential. It is never
// stored server-side: validity is re-derived from the signature and
// expiry on every use.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  AccessToken
	RefreshToken RefreshToken
}
