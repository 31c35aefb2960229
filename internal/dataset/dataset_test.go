package dataset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admindash/internal/errors"
	"admindash/internal/navigator"
	"admindash/internal/query"
	"admindash/pkg/testutils"
)

func builtin(t *testing.T) Snapshot {
	t.Helper()
	snap, err := Builtin()
	require.NoError(t, err)
	return snap
}

func TestDefaultQueriesValidate(t *testing.T) {
	for _, s := range Screens() {
		t.Run(s.Name, func(t *testing.T) {
			require.NoError(t, s.Engine.Validate(s.Default))
			for _, col := range s.Columns {
				_, ok := s.Engine.Field(col)
				assert.True(t, ok, "column %s is not a declared field", col)
			}
			// Every key the screen offers is present in its default query.
			for _, key := range s.Engine.FilterKeys() {
				assert.Contains(t, s.Default.Filters, key)
			}
		})
	}
}

func TestActivityAdminSearch(t *testing.T) {
	s, err := LookupScreen(ScreenActivity)
	require.NoError(t, err)

	q := query.Query{
		Term:          "admin",
		Filters:       map[string]string{"logType": query.All},
		SortField:     "timestamp",
		SortDirection: query.Desc,
	}
	view, err := s.Run(builtin(t), q)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"6", "2"}, view.IDs()); diff != "" {
		t.Errorf("admin search (-want +got):\n%s", diff)
	}
}

func TestActivitySecurityFilter(t *testing.T) {
	s, err := LookupScreen(ScreenActivity)
	require.NoError(t, err)

	view, err := s.Run(builtin(t), s.Default.WithFilter("logType", "security"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"4", "7"}, view.IDs())
	for _, r := range view {
		assert.Contains(t, []string{"critical", "warning"}, r.String("severity"))
	}
}

func TestAuditFilters(t *testing.T) {
	s, err := LookupScreen(ScreenAudit)
	require.NoError(t, err)

	view, err := s.Run(builtin(t), s.Default.WithFilter("status", "failure"))
	require.NoError(t, err)
	assert.Equal(t, []string{"107", "104"}, view.IDs())

	view, err = s.Run(builtin(t), s.Default.WithFilter("category", "user").WithTerm("jane"))
	require.NoError(t, err)
	assert.Equal(t, []string{"102", "101"}, view.IDs())

	facets, err := s.Engine.Facets(builtin(t).Records[ScreenAudit], "category")
	require.NoError(t, err)
	assert.Equal(t, []string{query.All, "auth", "file", "settings", "user"}, facets)
}

func TestLookupScreen(t *testing.T) {
	_, err := LookupScreen("billing")
	assert.True(t, errors.IsInvalidInputError(err))
	assert.Equal(t, []string{ScreenActivity, ScreenAudit, ScreenContacts}, ScreenNames())
}

func TestAnnotateContacts(t *testing.T) {
	in := Contacts()
	out := AnnotateContacts(in)
	require.Len(t, out, len(in))

	flags := map[string][2]bool{}
	for _, r := range out {
		flags[r.ID()] = [2]bool{r[FlagDuplicate].(bool), r[FlagInvalidEmail].(bool)}
	}
	assert.Equal(t, map[string][2]bool{
		"1": {true, false},
		"2": {false, false},
		"3": {false, true},
		"4": {false, false},
		"5": {true, false},
		"6": {true, false},
		"7": {true, false},
		"8": {false, true},
	}, flags)

	// Inputs are left alone.
	_, touched := in[0][FlagDuplicate]
	assert.False(t, touched)
}

func TestValidEmail(t *testing.T) {
	for _, good := range []string{"a@example.com", "first.last+tag@sub.example.org"} {
		assert.True(t, ValidEmail(good), good)
	}
	for _, bad := range []string{"", "plain", "a@localhost", "Name <a@example.com>", "a b@example.com", "a@example.", "a@.com"} {
		assert.False(t, ValidEmail(bad), bad)
	}
}

func TestContactStatusFilter(t *testing.T) {
	s, err := LookupScreen(ScreenContacts)
	require.NoError(t, err)
	snap := builtin(t)

	tests := []struct {
		status string
		want   []string
	}{
		{"duplicate", []string{"7", "6", "1", "5"}},
		{"invalid", []string{"8", "3"}},
		{"valid", []string{"2", "4"}},
		{" invalid ", []string{"8", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			view, err := s.Run(snap, s.Default.WithFilter("status", tt.status))
			require.NoError(t, err)
			assert.Equal(t, tt.want, view.IDs())
		})
	}

	// Only the named statuses are accepted
	_, err = s.Run(snap, s.Default.WithFilter("status", "bogus"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInputError(err), "got %v", err)

	facets, err := s.Engine.Facets(snap.Records[ScreenContacts], "status")
	require.NoError(t, err)
	assert.Equal(t, []string{query.All, "duplicate", "invalid", "valid"}, facets)
}

func TestBuiltinTree(t *testing.T) {
	snap := builtin(t)
	require.NotNil(t, snap.Tree)
	assert.Equal(t, len(FileNodes()), snap.Tree.Len())

	n, ok := snap.Tree.Lookup("/Documents/Contracts/Acme NDA.pdf")
	require.True(t, ok)
	assert.Equal(t, "131", n.ID)

	nav := navigator.New(snap.Tree)
	require.NoError(t, nav.JumpTo("/Projects/website"))
	assert.Equal(t, []string{"311", "312"}, nav.Children().IDs())
	assert.Equal(t, SourceBuiltin, snap.Sources[ScreenFiles])
}

func TestLoadDirWithSeeds(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteRecords(t, dir, ScreenActivity, testutils.DefaultRecords())
	testutils.WriteFiles(t, dir, map[string]string{
		"files.yaml": `nodes:
  - id: "r"
    name: Home
    kind: folder
  - id: "d"
    name: Docs
    parentId: "r"
    kind: folder
  - name: readme.md
    parentId: "d"
    kind: file
    size: 10
    modified: 2024-02-01T09:00:00Z
`,
	})

	snap, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, path, snap.Sources[ScreenActivity])
	assert.Equal(t, SourceBuiltin, snap.Sources[ScreenAudit])
	assert.Len(t, snap.Records[ScreenAudit], len(AuditLogs()))

	records := snap.Records[ScreenActivity]
	require.Len(t, records, 3)
	_, err = uuid.Parse(records[2].ID())
	assert.NoError(t, err, "record without id should get a uuid")

	s, _ := LookupScreen(ScreenActivity)
	view, err := s.Run(snap, s.Default.WithFilter("logType", "security"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, view.IDs())

	readme, ok := snap.Tree.Lookup("/Docs/readme.md")
	require.True(t, ok)
	assert.Equal(t, int64(10), readme.Size)
	assert.False(t, readme.Modified.IsZero())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{"audit.yaml": "records: [unclosed"})
	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.True(t, errors.IsDatasetError(err))

	var dsErr *errors.DatasetError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, SeedFile(dir, ScreenAudit), dsErr.Path())

	dir = t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{"files.yaml": `nodes:
  - id: "a"
    name: loose
    parentId: "missing"
    kind: folder
`})
	_, err = LoadDir(dir)
	require.Error(t, err)
	assert.True(t, errors.IsDatasetError(err))
	assert.True(t, errors.IsInvalidTree(err))

	_, err = LoadRecords(SeedFile(t.TempDir(), ScreenContacts))
	assert.True(t, errors.IsDatasetError(err))
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	snap := builtin(t)
	dup := snap.Clone()
	dup.Records[ScreenActivity][0]["user"] = "mallory"
	dup.Records[ScreenAudit] = nil

	assert.Equal(t, "john.doe@example.com", snap.Records[ScreenActivity][0].String("user"))
	assert.Len(t, snap.Records[ScreenAudit], len(AuditLogs()))
	assert.Same(t, snap.Tree, dup.Tree)
}
