package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/dental-lab/internal/timezone"
	"github.com/BruksfildServices01/dental-lab/internal/validators"
)

// BookingRequest is the public appointment form.
type BookingRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

const (
	MsgName         = "El nombre debe tener al menos 2 caracteres."
	MsgEmail        = "Ingresa un correo electrónico válido."
	MsgPhone        = "Ingresa un número de celular válido (9 dígitos, empieza con 9)."
	MsgService      = "Selecciona un servicio."
	MsgDateRequired = "Selecciona una fecha."
	MsgDateInvalid  = "La fecha no es válida."
	MsgDatePast     = "La fecha no puede ser anterior a hoy."
	MsgTimeRequired = "Selecciona un horario."
	MsgTimeOffGrid  = "El horario seleccionado no es válido."
)

func MsgDateTooFar(days int) string {
	return fmt.Sprintf("Solo se pueden reservar citas con hasta %d días de anticipación.", days)
}

// Validate returns every broken rule. An empty result means the request is
// acceptable. Dates are compared as calendar days in now's location.
func Validate(in BookingRequest, now time.Time, maxDaysAhead int) []string {
	return append(validateFields(in), validateSchedule(in, now, maxDaysAhead)...)
}

// ValidateEdit checks an edited appointment. The date window only applies
// when the edit moves the booking, so old records stay editable.
func ValidateEdit(in BookingRequest, now time.Time, maxDaysAhead int, moved bool) []string {
	if moved {
		return Validate(in, now, maxDaysAhead)
	}
	return validateFields(in)
}

func validateFields(in BookingRequest) []string {
	errs := []string{}

	if validators.NameLength(in.Name) < 2 {
		errs = append(errs, MsgName)
	}

	if strings.TrimSpace(in.Email) == "" || !validators.IsEmailShape(in.Email) {
		errs = append(errs, MsgEmail)
	}

	if strings.TrimSpace(in.Phone) == "" || !validators.IsMobilePhone(in.Phone) {
		errs = append(errs, MsgPhone)
	}

	if strings.TrimSpace(in.Service) == "" {
		errs = append(errs, MsgService)
	}

	return errs
}

func validateSchedule(in BookingRequest, now time.Time, maxDaysAhead int) []string {
	errs := []string{}

	if msg := validateDate(strings.TrimSpace(in.Date), now, maxDaysAhead); msg != "" {
		errs = append(errs, msg)
	}

	switch hm := strings.TrimSpace(in.Time); {
	case hm == "":
		errs = append(errs, MsgTimeRequired)
	case !OnGrid(hm):
		errs = append(errs, MsgTimeOffGrid)
	}

	return errs
}

func validateDate(date string, now time.Time, maxDaysAhead int) string {
	if date == "" {
		return MsgDateRequired
	}

	day, err := timezone.ParseDate(date, now.Location())
	if err != nil {
		return MsgDateInvalid
	}

	today := timezone.StartOfDay(now)
	if day.Before(today) {
		return MsgDatePast
	}
	if day.After(today.AddDate(0, 0, maxDaysAhead)) {
		return MsgDateTooFar(maxDaysAhead)
	}
	return ""
}

// Normalize trims the request and canonicalises email and phone for storage.
func (r BookingRequest) Normalize() BookingRequest {
	return BookingRequest{
		Name:    validators.NormalizeName(r.Name),
		Email:   validators.NormalizeEmail(r.Email),
		Phone:   validators.StripSpaces(r.Phone),
		Service: strings.TrimSpace(r.Service),
		Date:    strings.TrimSpace(r.Date),
		Time:    strings.TrimSpace(r.Time),
		Notes:   strings.TrimSpace(r.Notes),
	}
}
