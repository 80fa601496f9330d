package admin

import (
	"context"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/dental-lab/internal/audit"
	"github.com/BruksfildServices01/dental-lab/internal/auth"
	domain "github.com/BruksfildServices01/dental-lab/internal/domain/admin"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/models"
	"github.com/BruksfildServices01/dental-lab/internal/validators"
)

// loginStampEvery limits how often a request rewrites last_login_at.
const loginStampEvery = 12 * time.Hour

const (
	CodeInvalidCredentials = "invalid_credentials"
)

const (
	MsgSubject  = "El identificador del administrador es obligatorio."
	MsgEmail    = "Ingresa un correo electrónico válido."
	MsgRole     = "Rol no válido."
	MsgStatus   = "Estado no válido."
	MsgPassword = "La contraseña debe tener al menos 8 caracteres."
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Service struct {
	repo   domain.Repository
	tokens *auth.Tokens
	audit  Auditor
	now    func() time.Time
}

func NewService(repo domain.Repository, tokens *auth.Tokens, auditor Auditor, now func() time.Time) *Service {
	return &Service{repo: repo, tokens: tokens, audit: auditor, now: now}
}

// ======================================================
// Authentication
// ======================================================

// Authenticate resolves a verified identity to an active administrator. The
// stored e-mail follows the identity provider.
func (s *Service) Authenticate(ctx context.Context, subject, email string) (*models.Administrator, error) {
	a, err := s.repo.GetBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	if !domain.IsActive(a) {
		return nil, httperr.ErrBusiness(httperr.CodeInactiveAdmin)
	}

	now := s.now()
	dirty := false

	if email = validators.NormalizeEmail(email); email != "" && email != a.Email {
		a.Email = email
		dirty = true
	}
	if a.LastLoginAt == nil || now.Sub(*a.LastLoginAt) >= loginStampEvery {
		a.LastLoginAt = &now
		dirty = true
	}

	if dirty {
		a.UpdatedAt = now
		if err := s.repo.Save(ctx, a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Login checks a local password and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.Administrator, error) {
	a, err := s.repo.GetByEmail(ctx, validators.NormalizeEmail(email))
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return "", nil, httperr.ErrBusiness(CodeInvalidCredentials)
	}
	if err != nil {
		return "", nil, err
	}

	if !auth.CheckPassword(a.PasswordHash, password) {
		return "", nil, httperr.ErrBusiness(CodeInvalidCredentials)
	}
	if !domain.IsActive(a) {
		return "", nil, httperr.ErrBusiness(httperr.CodeInactiveAdmin)
	}

	token, err := s.tokens.Issue(a.Subject, a.Email)
	if err != nil {
		return "", nil, err
	}
	return token, a, nil
}

// ======================================================
// User management
// ======================================================

type CreateInput struct {
	Subject  string `json:"subject"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (in CreateInput) validate() []string {
	errs := []string{}
	if strings.TrimSpace(in.Subject) == "" {
		errs = append(errs, MsgSubject)
	}
	if !validators.IsEmailShape(in.Email) {
		errs = append(errs, MsgEmail)
	}
	if !domain.Role(in.Role).Valid() {
		errs = append(errs, MsgRole)
	}
	if in.Password != "" && len(in.Password) < 8 {
		errs = append(errs, MsgPassword)
	}
	return errs
}

func (s *Service) List(ctx context.Context) ([]models.Administrator, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, subject string) (*models.Administrator, error) {
	return s.repo.GetBySubject(ctx, subject)
}

// Create adds an administrator with the default permissions of its role.
// An existing subject is never replaced.
func (s *Service) Create(ctx context.Context, actor *string, in CreateInput) (*models.Administrator, error) {
	a, err := s.newAdministrator(in)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetBySubject(ctx, a.Subject); err == nil {
		return nil, httperr.ErrBusiness(httperr.CodeAdminExists)
	} else if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		return nil, err
	}

	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, err
	}

	s.dispatch(actor, "admin_created", a.Subject, map[string]string{"role": a.Role})
	return a, nil
}

// Seed creates or replaces an administrator from the command line. The
// original creation time survives a replace.
func (s *Service) Seed(ctx context.Context, in CreateInput) (*models.Administrator, error) {
	a, err := s.newAdministrator(in)
	if err != nil {
		return nil, err
	}

	prev, err := s.repo.GetBySubject(ctx, a.Subject)
	switch {
	case err == nil:
		a.CreatedAt = prev.CreatedAt
	case !httperr.IsBusiness(err, httperr.CodeNotFound):
		return nil, err
	}

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}

	s.dispatch(nil, "admin_seeded", a.Subject, map[string]string{"role": a.Role})
	return a, nil
}

func (s *Service) newAdministrator(in CreateInput) (*models.Administrator, error) {
	if errs := in.validate(); len(errs) > 0 {
		return nil, httperr.ErrValidation(errs)
	}

	now := s.now()
	a := &models.Administrator{
		Subject:     strings.TrimSpace(in.Subject),
		Email:       validators.NormalizeEmail(in.Email),
		Name:        validators.NormalizeName(in.Name),
		Role:        in.Role,
		Permissions: datatypes.NewJSONType(domain.DefaultPermissions(domain.Role(in.Role))),
		Status:      string(domain.StatusActive),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		a.PasswordHash = hash
	}
	return a, nil
}

// Patch edits an administrator. Changing the role does not reset the
// permission set; send permissions explicitly for that.
type Patch struct {
	Name        *string             `json:"name"`
	Role        *string             `json:"role"`
	Status      *string             `json:"status"`
	Permissions *models.Permissions `json:"permissions"`
}

func (s *Service) Update(ctx context.Context, actor, subject string, p Patch) (*models.Administrator, error) {
	errs := []string{}
	if p.Role != nil && !domain.Role(*p.Role).Valid() {
		errs = append(errs, MsgRole)
	}
	if p.Status != nil && !domain.Status(*p.Status).Valid() {
		errs = append(errs, MsgStatus)
	}
	if len(errs) > 0 {
		return nil, httperr.ErrValidation(errs)
	}

	by, err := s.repo.GetBySubject(ctx, actor)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeNotAllowed)
	}
	if err != nil {
		return nil, err
	}

	a, err := s.repo.GetBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	if err := authorizePatch(by, a, p); err != nil {
		return nil, err
	}

	if p.Name != nil {
		a.Name = validators.NormalizeName(*p.Name)
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Permissions != nil {
		a.Permissions = datatypes.NewJSONType(*p.Permissions)
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}

	s.dispatch(&actor, "admin_updated", a.Subject, nil)
	return a, nil
}

// authorizePatch keeps privileges from flowing upwards. Only a super_admin
// may touch its own access, another super_admin, or grant what it lacks.
func authorizePatch(by, target *models.Administrator, p Patch) error {
	if domain.IsSuperAdmin(by) {
		return nil
	}

	touchesAccess := p.Role != nil || p.Status != nil || p.Permissions != nil
	switch {
	case touchesAccess && by.Subject == target.Subject:
		return httperr.ErrBusiness(httperr.CodeNotAllowed)
	case touchesAccess && domain.IsSuperAdmin(target):
		return httperr.ErrBusiness(httperr.CodeNotAllowed)
	case p.Role != nil && domain.Role(*p.Role) == domain.RoleSuperAdmin:
		return httperr.ErrBusiness(httperr.CodeNotAllowed)
	}

	if p.Permissions != nil {
		held := by.Permissions.Data()
		for _, g := range domain.Grants(target.Permissions.Data(), *p.Permissions) {
			if !domain.Has(held, g) {
				return httperr.ErrBusiness(httperr.CodeNotAllowed)
			}
		}
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, actor, subject string) error {
	if actor == subject {
		return httperr.ErrBusiness(httperr.CodeSelfDelete)
	}
	if err := s.repo.Delete(ctx, subject); err != nil {
		return err
	}

	s.dispatch(&actor, "admin_deleted", subject, nil)
	return nil
}

func (s *Service) dispatch(actor *string, action, subject string, meta any) {
	if s.audit == nil {
		return
	}
	s.audit.Dispatch(audit.Event{
		ActorSubject: actor,
		Action:       action,
		Entity:       "administrator",
		EntityID:     subject,
		Metadata:     meta,
	})
}
