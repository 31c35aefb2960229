package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admindash/internal/errors"
)

func TestDeriveCoversEveryPermission(t *testing.T) {
	for _, role := range Roles() {
		set, err := Derive(role)
		require.NoError(t, err)
		assert.Len(t, set, len(All()), role)
	}
}

func TestDeriveTable(t *testing.T) {
	admin, err := Derive(Admin)
	require.NoError(t, err)
	assert.Equal(t, All(), admin.Granted())

	viewer, err := Derive(Viewer)
	require.NoError(t, err)
	assert.Equal(t, []Permission{UsersView, FilesView, ContactsView, LogsView}, viewer.Granted())

	manager, err := Derive(Manager)
	require.NoError(t, err)
	assert.False(t, manager[RolesManage])
	assert.True(t, manager[AuditView])

	editor, err := Derive(Editor)
	require.NoError(t, err)
	assert.True(t, editor[FilesUpload])
	assert.False(t, editor[FilesDelete])
}

func TestRolesAreNested(t *testing.T) {
	roles := Roles()
	for i := 1; i < len(roles); i++ {
		higher, err := Derive(roles[i-1])
		require.NoError(t, err)
		lower, err := Derive(roles[i])
		require.NoError(t, err)
		for _, p := range lower.Granted() {
			assert.True(t, higher[p], "%s grants %s but %s does not", roles[i], p, roles[i-1])
		}
	}
}

func TestDeriveUnknownRole(t *testing.T) {
	_, err := Derive(Role("owner"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInputError(err))

	_, err = ParseRole("Owner")
	assert.True(t, errors.IsInvalidInputError(err))

	r, err := ParseRole(" Editor ")
	require.NoError(t, err)
	assert.Equal(t, Editor, r)
}

func TestResolveMergesOverrides(t *testing.T) {
	set, err := Resolve(Viewer, map[Permission]bool{FilesUpload: true, LogsView: false})
	require.NoError(t, err)
	assert.True(t, set[FilesUpload])
	assert.False(t, set[LogsView])
	assert.Equal(t, []Permission{FilesUpload, LogsView}, set.Diff(Viewer))

	// The table itself is untouched.
	base, err := Derive(Viewer)
	require.NoError(t, err)
	assert.True(t, base[LogsView])
	assert.False(t, base[FilesUpload])
}

func TestResolveRejectsUnknownPermission(t *testing.T) {
	_, err := Resolve(Admin, map[Permission]bool{"billing.view": true})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestOverrides(t *testing.T) {
	o, err := Overrides([]string{"files.delete", "audit.view"}, []string{"audit.view"})
	require.NoError(t, err)
	assert.Equal(t, map[Permission]bool{FilesDelete: true, AuditView: false}, o)

	_, err = Overrides([]string{"files.shred"}, nil)
	assert.True(t, errors.IsInvalidInputError(err))
}
