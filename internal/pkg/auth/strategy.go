package auth

import "time"

// Strategy issues and validates signed admin tokens. The subject travels
// through the token; this service only ever uses the "admin" subject since
// student identity is delegated to the external provider.
type Strategy interface {
	IssueToken(subject string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
