// Package access models the caller roles supplied by the authorization
// collaborator. Roles are trusted as given; the access policy decides what
// each role may do.
package access

import (
	"slices"
	"strings"
)

// Role is a marketplace role name as issued by the identity provider.
type Role string

const (
	Customer      Role = "Customer"
	Vendor        Role = "Vendor"
	CSR           Role = "CSR"
	Administrator Role = "Administrator"
)

var knownRoles = []Role{Customer, Vendor, CSR, Administrator}

// ParseRole matches a role name case-insensitively. Unknown names return false.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range knownRoles {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

// Roles is the role set of one caller.
type Roles struct {
	set []Role
}

// NewRoles builds a role set, dropping duplicates.
func NewRoles(roles ...Role) Roles {
	set := make([]Role, 0, len(roles))
	for _, r := range roles {
		if r != "" && !slices.Contains(set, r) {
			set = append(set, r)
		}
	}
	return Roles{set: set}
}

// ParseRoles parses a comma-separated header value such as "Vendor, CSR".
// Unknown role names are ignored.
func ParseRoles(header string) Roles {
	var roles []Role
	for _, part := range strings.Split(header, ",") {
		if r, ok := ParseRole(part); ok {
			roles = append(roles, r)
		}
	}
	return NewRoles(roles...)
}

// Has reports whether the set contains role.
func (r Roles) Has(role Role) bool {
	return slices.Contains(r.set, role)
}

// HasAny reports whether the set contains at least one of roles.
func (r Roles) HasAny(roles ...Role) bool {
	for _, role := range roles {
		if r.Has(role) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the caller holds no roles.
func (r Roles) IsEmpty() bool {
	return len(r.set) == 0
}

// Strings returns the role names in insertion order.
func (r Roles) Strings() []string {
	out := make([]string, len(r.set))
	for i, role := range r.set {
		out[i] = string(role)
	}
	return out
}
