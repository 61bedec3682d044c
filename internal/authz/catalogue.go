// Package authz owns the permission catalogue, the default role table and
// the checks that gate every API operation.
package authz

import (
	"strings"

	"github.com/otcheredev/remedium-hms/internal/models"
)

// Actions a permission can grant.
const (
	ActionView   = "view"
	ActionAdd    = "add"
	ActionChange = "change"
	ActionDelete = "delete"
)

var actions = []string{ActionView, ActionAdd, ActionChange, ActionDelete}

// Resources protected by permissions.
const (
	ResourcePatients      = "patients"
	ResourceStaff         = "staff"
	ResourceAppointments  = "appointments"
	ResourceInvoices      = "invoices"
	ResourceInventory     = "inventory"
	ResourceLabTests      = "labtests"
	ResourcePrescriptions = "prescriptions"
	ResourceSurgeries     = "surgeries"
	ResourceWards         = "wards"
	ResourceRooms         = "rooms"
	ResourceCare          = "care"
	ResourceReports       = "reports"
	ResourceIntegrations  = "integrations"
)

// Resources lists every protected resource.
var Resources = []string{
	ResourcePatients, ResourceStaff, ResourceAppointments, ResourceInvoices,
	ResourceInventory, ResourceLabTests, ResourcePrescriptions, ResourceSurgeries,
	ResourceWards, ResourceRooms, ResourceCare, ResourceReports,
	ResourceIntegrations,
}

// Codename builds the permission identifier for resource and action.
func Codename(resource, action string) string {
	return resource + "." + action
}

// SplitCodename is the inverse of Codename.
func SplitCodename(codename string) (resource, action string, ok bool) {
	return strings.Cut(codename, ".")
}

// Catalogue returns one permission per resource and action.
func Catalogue() []models.Permission {
	perms := make([]models.Permission, 0, len(Resources)*len(actions))
	for _, r := range Resources {
		for _, a := range actions {
			perms = append(perms, models.Permission{Codename: Codename(r, a), Resource: r, Action: a})
		}
	}
	return perms
}

// AllCodenames lists the codename of every catalogue permission.
func AllCodenames() []string {
	perms := Catalogue()
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = p.Codename
	}
	return out
}
