package query

import (
	"strings"

	"admindash/internal/errors"
)

// All is the filter value that disables a filter.
const All = "all"

// Direction is a sort direction
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// ParseDirection accepts "asc" or "desc" in any case. An empty string is Asc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	}
	return Asc, errors.NewInvalidInputError("unknown sort direction", nil).WithContext("direction", s)
}

// Query is the complete, immutable description of one result view: a free-text
// term, the active filter values keyed by filter key, and a sort.
type Query struct {
	Term          string
	Filters       map[string]string
	SortField     string
	SortDirection Direction
}

// WithTerm returns a copy of q with the search term replaced
func (q Query) WithTerm(term string) Query {
	q.Filters = q.cloneFilters()
	q.Term = term
	return q
}

// WithFilter returns a copy of q with one filter value set
func (q Query) WithFilter(key, value string) Query {
	q.Filters = q.cloneFilters()
	q.Filters[key] = value
	return q
}

// WithSort returns a copy of q sorted by field in direction dir
func (q Query) WithSort(field string, dir Direction) Query {
	q.Filters = q.cloneFilters()
	q.SortField = field
	q.SortDirection = dir
	return q
}

func (q Query) cloneFilters() map[string]string {
	dup := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		dup[k] = v
	}
	return dup
}

// Active reports whether a filter value narrows the result
func Active(value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && !strings.EqualFold(v, All)
}

// View is the ordered result of running a Query
type View []Record

// IDs returns the record ids in view order
func (v View) IDs() []string {
	ids := make([]string, len(v))
	for i, r := range v {
		ids[i] = r.ID()
	}
	return ids
}
