package admin

import (
	"context"
	"slices"

	"github.com/BruksfildServices01/dental-lab/internal/models"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleViewer     Role = "viewer"
)

var AllRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleModerator, RoleViewer}

func (r Role) Valid() bool { return slices.Contains(AllRoles, r) }

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

var AllStatuses = []Status{StatusActive, StatusInactive, StatusSuspended}

func (s Status) Valid() bool { return slices.Contains(AllStatuses, s) }

// Permission names one capability flag. Values match the JSON keys.
type Permission string

const (
	PermDashboard    Permission = "dashboard"
	PermContacts     Permission = "contacts"
	PermAppointments Permission = "appointments"
	PermReports      Permission = "reports"
	PermSettings     Permission = "settings"
	PermUsers        Permission = "users"
	PermCreateUsers  Permission = "createUsers"
	PermDeleteUsers  Permission = "deleteUsers"
	PermExportData   Permission = "exportData"
)

var AllPermissions = []Permission{
	PermDashboard, PermContacts, PermAppointments, PermReports, PermSettings,
	PermUsers, PermCreateUsers, PermDeleteUsers, PermExportData,
}

// DefaultPermissions is the bundle a role starts with. Later edits to the
// permission set do not consult the role again.
func DefaultPermissions(r Role) models.Permissions {
	switch r {
	case RoleSuperAdmin:
		return models.Permissions{
			Dashboard: true, Contacts: true, Appointments: true, Reports: true,
			Settings: true, Users: true, CreateUsers: true, DeleteUsers: true, ExportData: true,
		}
	case RoleAdmin:
		return models.Permissions{
			Dashboard: true, Contacts: true, Appointments: true, Reports: true,
			Settings: true, Users: true, ExportData: true,
		}
	case RoleModerator:
		return models.Permissions{Dashboard: true, Contacts: true, Appointments: true}
	case RoleViewer:
		return models.Permissions{Dashboard: true, Reports: true}
	}
	return models.Permissions{}
}

func Has(p models.Permissions, perm Permission) bool {
	switch perm {
	case PermDashboard:
		return p.Dashboard
	case PermContacts:
		return p.Contacts
	case PermAppointments:
		return p.Appointments
	case PermReports:
		return p.Reports
	case PermSettings:
		return p.Settings
	case PermUsers:
		return p.Users
	case PermCreateUsers:
		return p.CreateUsers
	case PermDeleteUsers:
		return p.DeleteUsers
	case PermExportData:
		return p.ExportData
	}
	return false
}

func IsSuperAdmin(a *models.Administrator) bool {
	return Role(a.Role) == RoleSuperAdmin
}

// Grants lists the permissions set in next that are not set in prev.
func Grants(prev, next models.Permissions) []Permission {
	var out []Permission
	for _, p := range AllPermissions {
		if Has(next, p) && !Has(prev, p) {
			out = append(out, p)
		}
	}
	return out
}

func IsActive(a *models.Administrator) bool {
	return Status(a.Status) == StatusActive
}

type Repository interface {
	GetBySubject(ctx context.Context, subject string) (*models.Administrator, error)
	GetByEmail(ctx context.Context, email string) (*models.Administrator, error)
	List(ctx context.Context) ([]models.Administrator, error)
	Insert(ctx context.Context, a *models.Administrator) error
	Save(ctx context.Context, a *models.Administrator) error
	Delete(ctx context.Context, subject string) error
}
