package query

import (
	"strings"

	"github.com/gobwas/glob"
)

// Predicate reports whether a record passes a filter
type Predicate func(Record) bool

// Filter is a named filter registered with an Engine. A value selects the
// predicate: a Named entry wins, then Compile, then plain equality on Field.
// A Strict filter accepts only its Named values.
type Filter struct {
	Key     string
	Field   string
	Named   map[string]Predicate
	Compile func(value string) Predicate
	Strict  bool
}

// Equals registers a filter that keeps records whose field equals the value
func Equals(key, field string) Filter {
	return Filter{Key: key, Field: field}
}

// WithNamed returns a copy of f where value selects p instead of equality
func (f Filter) WithNamed(value string, p Predicate) Filter {
	named := make(map[string]Predicate, len(f.Named)+1)
	for k, v := range f.Named {
		named[k] = v
	}
	named[value] = p
	f.Named = named
	return f
}

func (f Filter) predicate(value string) Predicate {
	if p, ok := f.Named[value]; ok {
		return p
	}
	if f.Compile != nil {
		return f.Compile(value)
	}
	field := f.Field
	if field == "" {
		field = f.Key
	}
	return func(r Record) bool {
		return Stringify(r[field]) == value
	}
}

// OneOf keeps records whose field is any of values
func OneOf(field string, values ...string) Predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(r Record) bool {
		_, ok := set[Stringify(r[field])]
		return ok
	}
}

// Not negates p
func Not(p Predicate) Predicate {
	return func(r Record) bool { return !p(r) }
}

// Glob compiles value as a case-insensitive shell pattern matched against
// field. Values without wildcards match as substrings, and patterns that
// fail to compile fall back to a substring match.
func Glob(field string) func(string) Predicate {
	return func(value string) Predicate {
		pattern := strings.ToLower(strings.TrimSpace(value))
		if !strings.ContainsAny(pattern, "*?[{") {
			return func(r Record) bool {
				return strings.Contains(fold(Stringify(r[field])), pattern)
			}
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return func(r Record) bool {
				return strings.Contains(fold(Stringify(r[field])), pattern)
			}
		}
		return func(r Record) bool {
			return g.Match(fold(Stringify(r[field])))
		}
	}
}
