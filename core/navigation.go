package core

import (
	"strings"

	"github.com/medease/desktop/internal/types"
)

// NavItem is one entry of the role-derived navigation. Icon is a
// symbolic name the UI maps onto a theme icon; core stays toolkit-free.
type NavItem struct {
	Label string
	Path  string
	Icon  string
}

// navTable is the single source of truth for role navigation. Role
// checks live here instead of being scattered through the views.
var navTable = map[types.Role][]NavItem{
	types.RoleAdmin: {
		{Label: "Appointments", Path: "/admin?tab=appointments", Icon: "calendar"},
		{Label: "Staff Management", Path: "/admin?tab=staff", Icon: "account"},
		{Label: "Patient Management", Path: "/admin?tab=patients", Icon: "folder"},
		{Label: "Finances", Path: "/admin?tab=finances", Icon: "document"},
	},
	types.RoleDoctor: {
		{Label: "My Appointments", Path: "/staff?tab=appointments", Icon: "calendar"},
		{Label: "Patients", Path: "/staff?tab=patients", Icon: "folder"},
	},
	types.RolePatient: {
		{Label: "Book Appointment", Path: "/patient?tab=book", Icon: "add"},
		{Label: "My Appointments", Path: "/patient?tab=appointments", Icon: "calendar"},
	},
}

var homeTable = map[types.Role]string{
	types.RoleAdmin:   "/admin",
	types.RoleDoctor:  "/staff",
	types.RolePatient: "/patient",
}

// NavigationFor returns the ordered navigation entries for a role.
// Unknown roles get no entries.
func NavigationFor(role types.Role) []NavItem {
	items := navTable[role]
	out := make([]NavItem, len(items))
	copy(out, items)
	return out
}

// HomeRouteFor returns the landing route for a role, "/" for unknown.
func HomeRouteFor(role types.Role) string {
	if home, ok := homeTable[role]; ok {
		return home
	}
	return "/"
}

// IsActive reports whether a nav item should be highlighted for the
// current location. An item matches exactly, or, when its path carries
// a tab marker, as a prefix of the current location, so tabbed
// sub-views stay highlighted under their parent entry.
func IsActive(item NavItem, currentPath string) bool {
	if item.Path == currentPath {
		return true
	}
	return strings.ContainsRune(item.Path, '?') && strings.HasPrefix(currentPath, item.Path)
}
