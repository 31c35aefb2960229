package dataset

import (
	"sort"

	"admindash/internal/errors"
	"admindash/internal/query"
)

// Screen names
const (
	ScreenActivity = "activity"
	ScreenAudit    = "audit"
	ScreenContacts = "contacts"
	ScreenFiles    = "files"
)

// Screen is one tabular dashboard screen: the engine for its record shape, the
// query it opens with and the columns it shows.
type Screen struct {
	Name    string
	Title   string
	Engine  *query.Engine
	Default query.Query
	Columns []string
}

var activityScreen = Screen{
	Name:  ScreenActivity,
	Title: "Activity Logs",
	Engine: query.NewEngine(
		[]query.Field{
			{Name: "timestamp", Kind: query.Timestamp},
			{Name: "user", Kind: query.Text, Searchable: true},
			{Name: "action", Kind: query.Text, Searchable: true},
			{Name: "type", Kind: query.Enum},
			{Name: "severity", Kind: query.Enum},
			{Name: "ipAddress", Kind: query.Identifier, Searchable: true},
		},
		query.Equals("logType", "type").
			WithNamed("security", query.OneOf("severity", "critical", "warning")),
		query.Equals("severity", "severity"),
	),
	Default: query.Query{
		Filters:       map[string]string{"logType": query.All, "severity": query.All},
		SortField:     "timestamp",
		SortDirection: query.Desc,
	},
	Columns: []string{"id", "timestamp", "user", "action", "type", "severity", "ipAddress"},
}

var auditScreen = Screen{
	Name:  ScreenAudit,
	Title: "Audit Logs",
	Engine: query.NewEngine(
		[]query.Field{
			{Name: "timestamp", Kind: query.Timestamp},
			{Name: "actor", Kind: query.Text, Searchable: true},
			{Name: "action", Kind: query.Text, Searchable: true},
			{Name: "resource", Kind: query.Text, Searchable: true},
			{Name: "category", Kind: query.Enum},
			{Name: "status", Kind: query.Enum},
			{Name: "ipAddress", Kind: query.Identifier, Searchable: true},
		},
		query.Equals("category", "category"),
		query.Equals("status", "status"),
	),
	Default: query.Query{
		Filters:       map[string]string{"category": query.All, "status": query.All},
		SortField:     "timestamp",
		SortDirection: query.Desc,
	},
	Columns: []string{"id", "timestamp", "actor", "action", "resource", "category", "status", "ipAddress"},
}

var contactsScreen = Screen{
	Name:  ScreenContacts,
	Title: "Contacts",
	Engine: query.NewEngine(
		[]query.Field{
			{Name: "name", Kind: query.Text, Searchable: true},
			{Name: "email", Kind: query.Text, Searchable: true},
			{Name: "phone", Kind: query.Identifier, Searchable: true},
			{Name: "company", Kind: query.Text, Searchable: true},
			{Name: "group", Kind: query.Enum},
			{Name: "createdAt", Kind: query.Timestamp},
			{Name: FlagDuplicate, Kind: query.Bool},
			{Name: FlagInvalidEmail, Kind: query.Bool},
		},
		query.Equals("group", "group"),
		query.Filter{
			Key: "status",
			Named: map[string]query.Predicate{
				"duplicate": isDuplicate,
				"invalid":   isInvalidEmail,
				"valid":     isCleanContact,
			},
			Strict: true,
		},
	),
	Default: query.Query{
		Filters:   map[string]string{"group": query.All, "status": query.All},
		SortField: "name",
	},
	Columns: []string{"id", "name", "email", "phone", "company", "group", FlagDuplicate, FlagInvalidEmail},
}

var screens = map[string]Screen{
	ScreenActivity: activityScreen,
	ScreenAudit:    auditScreen,
	ScreenContacts: contactsScreen,
}

// Screens returns the tabular screens in tab order
func Screens() []Screen {
	return []Screen{activityScreen, auditScreen, contactsScreen}
}

// ScreenNames returns the tabular screen names sorted
func ScreenNames() []string {
	names := make([]string, 0, len(screens))
	for name := range screens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupScreen finds a tabular screen by name
func LookupScreen(name string) (Screen, error) {
	s, ok := screens[name]
	if !ok {
		return Screen{}, errors.NewInvalidInputError("unknown screen", nil).WithContext("screen", name)
	}
	return s, nil
}

// Run executes q on the screen's records in snap
func (s Screen) Run(snap Snapshot, q query.Query) (query.View, error) {
	return s.Engine.Run(snap.Records[s.Name], q)
}
