package domain

// Session is the admin's client-held credential. The zero value is an
// unauthenticated session.
type Session struct {
	Authenticated bool
	Token         string
	Username      string
}

// SessionTokenHeader carries the admin session token on privileged requests.
const SessionTokenHeader = "X-Session-Token"
