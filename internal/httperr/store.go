package httperr

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnavailable
	KindPermission
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// StoreError is an infrastructure failure translated at the repository
// boundary. Err keeps the raw cause for logs; it is never sent to clients.
type StoreError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Classify wraps a raw store error with its kind. Domain errors and errors
// already classified pass through untouched.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	var be BusinessError
	if errors.As(err, &be) {
		return err
	}
	var ve ValidationError
	if errors.As(err, &ve) {
		return err
	}

	return &StoreError{Kind: classifyRaw(err), Op: op, Err: err}
}

func classifyRaw(err error) Kind {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return KindConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return KindUnavailable
	case errors.Is(err, driver.ErrBadConn):
		return KindUnavailable
	case pgconn.Timeout(err):
		return KindUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return KindConflict
		case "42501":
			return KindPermission
		case "57014", "53300", "08000", "08001", "08003", "08006":
			return KindUnavailable
		}
		return KindInternal
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindUnavailable
	}

	return KindInternal
}

// KindOf reports the taxonomy bucket of any error the service returns.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}

	var ve ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}

	var be BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case CodeSlotTaken, CodeTooSoon, CodeInvalidTransition, CodeAdminExists:
			return KindConflict
		case CodeNotFound:
			return KindNotFound
		case CodeInactiveAdmin, CodeNotAllowed:
			return KindPermission
		default:
			return KindValidation
		}
	}

	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}

	return KindInternal
}

// IsKind is a shorthand for KindOf(err) == k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
