package repository

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/dental-lab/internal/httperr"
)

// translate classifies err for op and logs infrastructure failures with
// their raw cause before it is hidden from callers.
func translate(log *slog.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	out := httperr.Classify(op, err)

	var se *httperr.StoreError
	if errors.As(out, &se) {
		log.Error("store.failed", "op", op, "kind", se.Kind.String(), "err", err)
	}
	return out
}
