package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was hit.
	ErrAlreadyExists = errors.New("already exists")

	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation failed")
	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields = fmt.Errorf("%w: missing required fields", ErrValidation)
	// ErrNotAuthenticated is returned for privileged calls without a session.
	ErrNotAuthenticated = fmt.Errorf("%w: not authenticated", ErrValidation)

	// ErrInvalidCredentials is returned when the authenticator rejects a login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnreachable covers transport failures and malformed responses.
	ErrUnreachable = errors.New("could not reach service")
)

// RemoteError is a domain-level rejection reported by a reachable collaborator.
// Message is empty when the collaborator gave no reason.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote rejected request: status %d", e.Status)
	}
	return fmt.Sprintf("remote rejected request: status %d: %s", e.Status, e.Message)
}

// RemoteMessage extracts the collaborator's message from err, if any.
func RemoteMessage(err error) (string, bool) {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message, true
	}
	return "", false
}
