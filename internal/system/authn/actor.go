// Package authn defines the authenticated caller identity that the API
// layer trusts. Authentication itself happens upstream; handlers receive
// the caller identity from trusted gateway headers.
package authn

// Roles recognized by the portal.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
	RoleSystem     = "system"
)

// Actor is the authenticated caller on whose behalf an operation runs.
type Actor struct {
	UserID         int64  `json:"userId"`
	OrganizationID int64  `json:"organizationId"`
	Role           string `json:"role"`
}

// IsAdmin reports whether the actor holds an administrative role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin || a.Role == RoleSystem
}

// SpansOrganizations reports whether the actor may act across organizations.
func (a Actor) SpansOrganizations() bool {
	return a.Role == RoleSuperAdmin || a.Role == RoleSystem
}

// CanAccessOrganization reports whether the actor may act on resources
// belonging to the given organization.
func (a Actor) CanAccessOrganization(orgID int64) bool {
	return a.OrganizationID == orgID || a.SpansOrganizations()
}

// SystemActor returns the synthetic actor used by background jobs.
func SystemActor(userID int64) Actor {
	return Actor{UserID: userID, Role: RoleSystem}
}
