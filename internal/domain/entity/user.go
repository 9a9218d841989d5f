package entity

import "time"

// Role rol de un usuario; conjunto cerrado.
type Role string

// Roles válidos para User.
const (
	RoleAdmin   Role = "admin"
	RoleSales   Role = "sales"
	RoleGeneral Role = "general"
)

// Capability acción protegida por rol.
type Capability string

const (
	CapManageUsers    Capability = "manage_users"
	CapManagePipeline Capability = "manage_pipeline"
	CapManageClients  Capability = "manage_clients"
	CapUseInbox       Capability = "use_inbox"
	CapExportReports  Capability = "export_reports"
	CapUseSocial      Capability = "use_social"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {
		CapManageUsers, CapManagePipeline, CapManageClients,
		CapUseInbox, CapExportReports, CapUseSocial,
	},
	RoleSales: {
		CapManagePipeline, CapManageClients, CapUseInbox,
		CapExportReports, CapUseSocial,
	},
	RoleGeneral: {CapManagePipeline, CapManageClients, CapUseInbox},
}

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can indica si el rol tiene la capacidad. Un rol desconocido no tiene ninguna.
func (r Role) Can(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Username     string // único por convención; se verifica con búsqueda lineal al crear
	Email        string
	Name         string
	Role         Role
	PasswordHash string // bcrypt hash, nunca plano
	Active       bool
	CreatedAt    time.Time
}
