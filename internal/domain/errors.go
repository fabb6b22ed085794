package domain

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrNoAccounts           = errors.New("no accounts found")
	ErrMissingDestination   = errors.New("missing destination account name")
	ErrNotStatusLine        = errors.New("not a status line")
	ErrInventoryUnavailable = errors.New("inventory unavailable")
	ErrLabelNotFound        = errors.New("no slot matches label")
)
