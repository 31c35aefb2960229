// Package permissions derives the permission set of a dashboard role. The
// table is a pure lookup; manual changes are expressed as an override map
// merged on top of it.
package permissions

import (
	"sort"
	"strings"

	"admindash/internal/errors"
)

// Role is a dashboard role
type Role string

const (
	Admin   Role = "admin"
	Manager Role = "manager"
	Editor  Role = "editor"
	Viewer  Role = "viewer"
)

// Permission names one capability
type Permission string

const (
	UsersView           Permission = "users.view"
	UsersEdit           Permission = "users.edit"
	UsersDelete         Permission = "users.delete"
	RolesManage         Permission = "roles.manage"
	FilesView           Permission = "files.view"
	FilesUpload         Permission = "files.upload"
	FilesDelete         Permission = "files.delete"
	ContactsView        Permission = "contacts.view"
	ContactsEdit        Permission = "contacts.edit"
	LogsView            Permission = "logs.view"
	AuditView           Permission = "audit.view"
	SettingsEdit        Permission = "settings.edit"
	NotificationsManage Permission = "notifications.manage"
)

// Set maps every known permission to whether it is granted
type Set map[Permission]bool

var all = []Permission{
	UsersView, UsersEdit, UsersDelete, RolesManage,
	FilesView, FilesUpload, FilesDelete,
	ContactsView, ContactsEdit,
	LogsView, AuditView,
	SettingsEdit, NotificationsManage,
}

var grants = map[Role][]Permission{
	Admin: all,
	Manager: {
		UsersView, UsersEdit,
		FilesView, FilesUpload, FilesDelete,
		ContactsView, ContactsEdit,
		LogsView, AuditView,
		NotificationsManage,
	},
	Editor: {
		UsersView,
		FilesView, FilesUpload,
		ContactsView, ContactsEdit,
		LogsView,
	},
	Viewer: {UsersView, FilesView, ContactsView, LogsView},
}

// Roles returns the known roles from most to least privileged
func Roles() []Role {
	return []Role{Admin, Manager, Editor, Viewer}
}

// All returns every known permission in display order
func All() []Permission {
	out := make([]Permission, len(all))
	copy(out, all)
	return out
}

// ParseRole accepts a role name in any case
func ParseRole(name string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := grants[r]; !ok {
		return "", errors.NewInvalidInputError("unknown role", nil).WithContext("role", name)
	}
	return r, nil
}

// ParsePermission accepts a known permission name
func ParsePermission(name string) (Permission, error) {
	p := Permission(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range all {
		if known == p {
			return p, nil
		}
	}
	return "", errors.NewInvalidInputError("unknown permission", nil).WithContext("permission", name)
}

// Derive returns the full permission set of role with every known permission
// present as a key.
func Derive(role Role) (Set, error) {
	granted, ok := grants[role]
	if !ok {
		return nil, errors.NewInvalidInputError("unknown role", nil).WithContext("role", string(role))
	}
	set := make(Set, len(all))
	for _, p := range all {
		set[p] = false
	}
	for _, p := range granted {
		set[p] = true
	}
	return set, nil
}

// Resolve derives role's set and applies overrides on top. Overrides naming an
// unknown permission are rejected rather than silently added.
func Resolve(role Role, overrides map[Permission]bool) (Set, error) {
	set, err := Derive(role)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(overrides))
	for p := range overrides {
		keys = append(keys, string(p))
	}
	sort.Strings(keys)
	for _, k := range keys {
		p := Permission(k)
		if _, known := set[p]; !known {
			return nil, errors.NewInvalidInputError("unknown permission", nil).WithContext("permission", k)
		}
		set[p] = overrides[p]
	}
	return set, nil
}

// Overrides builds an override map from granted and revoked permission names.
// A permission both granted and revoked ends up revoked.
func Overrides(grant, revoke []string) (map[Permission]bool, error) {
	out := make(map[Permission]bool, len(grant)+len(revoke))
	for _, name := range grant {
		p, err := ParsePermission(name)
		if err != nil {
			return nil, err
		}
		out[p] = true
	}
	for _, name := range revoke {
		p, err := ParsePermission(name)
		if err != nil {
			return nil, err
		}
		out[p] = false
	}
	return out, nil
}

// Granted lists the granted permissions of s in display order
func (s Set) Granted() []Permission {
	var out []Permission
	for _, p := range all {
		if s[p] {
			out = append(out, p)
		}
	}
	return out
}

// Diff lists the permissions whose value in s differs from role's default
func (s Set) Diff(role Role) []Permission {
	base, err := Derive(role)
	if err != nil {
		return nil
	}
	var out []Permission
	for _, p := range all {
		if s[p] != base[p] {
			out = append(out, p)
		}
	}
	return out
}
