package httperr

import (
	"errors"
	"strings"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ValidationError carries every rule the input broke, not only the first.
type ValidationError struct {
	Messages []string
}

func (e ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func ErrValidation(messages []string) error {
	return ValidationError{Messages: messages}
}

// ValidationMessages returns the messages when err is a ValidationError.
func ValidationMessages(err error) ([]string, bool) {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Messages, true
	}
	return nil, false
}

const (
	CodeSlotTaken         = "slot_taken"
	CodeTooSoon           = "too_soon"
	CodeInvalidTransition = "invalid_transition"
	CodeNotFound          = "not_found"
	CodeInactiveAdmin     = "inactive_admin"
	CodeSelfDelete        = "cannot_delete_self"
	CodeAdminExists       = "admin_exists"
	CodeNotAllowed        = "insufficient_privileges"
)
