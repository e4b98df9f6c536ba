package app

import (
	"errors"

	"storefront/internal/domain"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is what the shopper or admin sees after an action.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

func (n Notice) IsError() bool {
	return n.Level == LevelError
}

func (n Notice) String() string {
	if n.Message == "" {
		return n.Title
	}
	return n.Title + ": " + n.Message
}

func info(title, msg string) Notice {
	return Notice{Level: LevelInfo, Title: title, Message: msg}
}

// Messages shown to the user. Validation errors other than the two named
// sentinels carry their own text.
const (
	MsgMissingFields      = "Please fill in all required fields"
	MsgNotAuthenticated   = "Sign in as an administrator first"
	MsgInvalidCredentials = "Invalid username or password"
	MsgUnreachable        = "Could not connect to the server"
	MsgAddProductFailed   = "Could not add product"
	MsgLoadCatalogFailed  = "Could not load the catalog"
	MsgLoadReviewsFailed  = "Could not load reviews"
	MsgSessionExpired     = "Session expired, sign in again"
)

// NoticeFor converts err into an error notice. fallback is used when a
// collaborator rejected the request without saying why.
func NoticeFor(err error, fallback string) Notice {
	n := Notice{Level: LevelError, Title: "Error"}
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		n.Message = MsgMissingFields
	case errors.Is(err, domain.ErrNotAuthenticated):
		n.Message = MsgNotAuthenticated
	case errors.Is(err, domain.ErrValidation):
		n.Message = err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		n.Message = MsgInvalidCredentials
	case errors.Is(err, domain.ErrUnreachable):
		n.Message = MsgUnreachable
	default:
		if msg, ok := domain.RemoteMessage(err); ok {
			n.Message = msg
		} else {
			n.Message = fallback
		}
	}
	return n
}
