package application

import "errors"

var (
	ErrForbidden          = errors.New("operation not allowed for this user")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrSameStatus         = errors.New("request already has this status")
	ErrTerminalStatus     = errors.New("request is in a terminal status")
	ErrNotDraft           = errors.New("request is no longer a draft")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrImageNotFound      = errors.New("receipt has no image")
	ErrInvalidColumn      = errors.New("invalid board column")
	ErrEmailTaken         = errors.New("email already registered")
	ErrBadCredentials     = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is deactivated")
)
