package contact

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/dental-lab/internal/models"
	"github.com/BruksfildServices01/dental-lab/internal/validators"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

var AllStatuses = []Status{StatusNew, StatusRead, StatusReplied, StatusArchived}

func (s Status) Valid() bool { return slices.Contains(AllStatuses, s) }

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool { return slices.Contains(AllPriorities, p) }

const (
	DefaultSubject = "Consulta general"
	DefaultSource  = "website"
	minMessageLen  = 10
)

type Request struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
	Source   string `json:"source"`
}

const (
	MsgName     = "El nombre debe tener al menos 2 caracteres."
	MsgEmail    = "Ingresa un correo electrónico válido."
	MsgPhone    = "Ingresa un número de celular válido (9 dígitos, empieza con 9)."
	MsgMessage  = "El mensaje debe tener al menos 10 caracteres."
	MsgPriority = "Prioridad no válida."
	MsgStatus   = "Estado no válido."
)

// Validate accumulates every broken rule. Phone is optional for contacts.
func Validate(in Request) []string {
	errs := []string{}

	if validators.NameLength(in.Name) < 2 {
		errs = append(errs, MsgName)
	}
	if !validators.IsEmailShape(in.Email) {
		errs = append(errs, MsgEmail)
	}
	if strings.TrimSpace(in.Phone) != "" && !validators.IsMobilePhone(in.Phone) {
		errs = append(errs, MsgPhone)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Message)) < minMessageLen {
		errs = append(errs, MsgMessage)
	}
	if in.Priority != "" && !Priority(in.Priority).Valid() {
		errs = append(errs, MsgPriority)
	}

	return errs
}

// Build turns a validated request into a new record with the defaults applied.
func Build(in Request) *models.Contact {
	c := &models.Contact{
		Name:     validators.NormalizeName(in.Name),
		Email:    validators.NormalizeEmail(in.Email),
		Phone:    validators.StripSpaces(in.Phone),
		Subject:  strings.TrimSpace(in.Subject),
		Message:  strings.TrimSpace(in.Message),
		Status:   string(StatusNew),
		Priority: in.Priority,
		Source:   strings.TrimSpace(in.Source),
	}
	if c.Subject == "" {
		c.Subject = DefaultSubject
	}
	if c.Priority == "" {
		c.Priority = string(PriorityMedium)
	}
	if c.Source == "" {
		c.Source = DefaultSource
	}
	return c
}

// Patch is the admin triage edit. Any status or priority may follow any
// other; only the values themselves are closed.
type Patch struct {
	Status     *string `json:"status"`
	Priority   *string `json:"priority"`
	AdminNotes *string `json:"admin_notes"`
}

func (p Patch) Validate() []string {
	errs := []string{}
	if p.Status != nil && !Status(*p.Status).Valid() {
		errs = append(errs, MsgStatus)
	}
	if p.Priority != nil && !Priority(*p.Priority).Valid() {
		errs = append(errs, MsgPriority)
	}
	return errs
}

func (p Patch) Apply(c *models.Contact) {
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	if p.AdminNotes != nil {
		c.AdminNotes = strings.TrimSpace(*p.AdminNotes)
	}
}

type Filter struct {
	Status   string
	Priority string
	Limit    int
}

type Repository interface {
	Create(ctx context.Context, c *models.Contact) error
	GetByID(ctx context.Context, id string) (*models.Contact, error)
	List(ctx context.Context, f Filter) ([]models.Contact, error)
	Update(ctx context.Context, c *models.Contact) error
	Delete(ctx context.Context, id string) error
}
