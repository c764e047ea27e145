package domain

import "slices"

const (
	LoginRoute   = "/login"
	DefaultRoute = "/dashboard"
)

// Section is a role-restricted area of the portal.
type Section string

const (
	SectionAdmin      Section = "admin"
	SectionCaseworker Section = "caseworker"
	SectionNGO        Section = "ngo"
	SectionRefugee    Section = "refugee"
)

type sectionRule struct {
	allowed []Role
	// roles sent to the caseworker area instead of the default route
	toCaseworker []Role
}

var sectionRules = map[Section]sectionRule{
	SectionAdmin: {
		allowed:      []Role{RoleAdmin},
		toCaseworker: []Role{RoleCaseworker, RoleNGO},
	},
	SectionCaseworker: {
		allowed: []Role{RoleCaseworker, RoleNGO, RoleAdmin},
	},
	SectionNGO: {
		allowed: []Role{RoleNGO, RoleAdmin},
	},
	SectionRefugee: {
		allowed:      []Role{RoleRefugee},
		toCaseworker: []Role{RoleCaseworker, RoleNGO, RoleAdmin},
	},
}

// Guard reports whether role may render the section. When it may not,
// redirect is where the user should be sent. This is navigation only;
// the API enforces access on its own.
func (s Section) Guard(role Role) (allowed bool, redirect string) {
	rule, ok := sectionRules[s]
	if !ok {
		return false, DefaultRoute
	}
	if slices.Contains(rule.allowed, role) {
		return true, ""
	}
	if slices.Contains(rule.toCaseworker, role) {
		return false, RoleCaseworker.LandingRoute()
	}
	return false, DefaultRoute
}
