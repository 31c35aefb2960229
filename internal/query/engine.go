// Package query evaluates search, filter and sort over in-memory record
// collections. An Engine is declared once per screen with its field shape and
// filters; Run is a pure function of the collection and the Query.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring"

	"admindash/internal/errors"
)

// Engine runs queries against collections of one record shape
type Engine struct {
	fields  []Field
	byName  map[string]Field
	filters map[string]Filter
	order   []string
}

// NewEngine declares a record shape and the filters available on it. The id
// field is added as an identifier when fields does not declare it.
func NewEngine(fields []Field, filters ...Filter) *Engine {
	e := &Engine{
		byName:  make(map[string]Field, len(fields)+1),
		filters: make(map[string]Filter, len(filters)),
	}
	for _, f := range fields {
		e.fields = append(e.fields, f)
		e.byName[f.Name] = f
	}
	if _, ok := e.byName[IDField]; !ok {
		id := Field{Name: IDField, Kind: Identifier}
		e.fields = append(e.fields, id)
		e.byName[IDField] = id
	}
	for _, f := range filters {
		if _, dup := e.filters[f.Key]; !dup {
			e.order = append(e.order, f.Key)
		}
		e.filters[f.Key] = f
	}
	return e
}

// Fields returns the declared fields in declaration order
func (e *Engine) Fields() []Field {
	out := make([]Field, len(e.fields))
	copy(out, e.fields)
	return out
}

// Field looks up a declared field by name
func (e *Engine) Field(name string) (Field, bool) {
	f, ok := e.byName[name]
	return f, ok
}

// FilterKeys returns the registered filter keys in registration order
func (e *Engine) FilterKeys() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Validate checks that q only names declared sort fields and registered filter
// keys. An unknown filter key is rejected even when its value is "all". Active
// values of strict filters must be one of the named values.
func (e *Engine) Validate(q Query) error {
	if _, ok := e.byName[q.SortField]; !ok {
		return errors.NewQueryError("unknown sort field", q.SortField, errors.InvalidSortField)
	}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f, ok := e.filters[k]
		if !ok {
			return errors.NewQueryError("no predicate registered for filter", k, errors.InvalidFilterKey)
		}
		v := strings.TrimSpace(q.Filters[k])
		if _, named := f.Named[v]; f.Strict && Active(v) && !named {
			return errors.NewInvalidInputError(fmt.Sprintf("unknown %s value %q", k, v), nil)
		}
	}
	return nil
}

// Run returns the records of collection that match q's term and every active
// filter, ordered by q's sort with ties broken by ascending id. The collection
// is never modified.
func (e *Engine) Run(collection []Record, q Query) (View, error) {
	if err := e.Validate(q); err != nil {
		return nil, err
	}

	matched := e.matchTerm(collection, q.Term)
	for key, value := range q.Filters {
		if !Active(value) {
			continue
		}
		matched.And(e.matchFilter(collection, e.filters[key].predicate(strings.TrimSpace(value))))
		if matched.IsEmpty() {
			break
		}
	}

	view := make(View, 0, matched.GetCardinality())
	it := matched.Iterator()
	for it.HasNext() {
		view = append(view, collection[it.Next()])
	}

	field := e.byName[q.SortField]
	compare := func(a, b Record) int {
		return compareValues(field.Kind, a[field.Name], b[field.Name])
	}
	if field.Name == IDField {
		compare = func(a, b Record) int { return compareIDs(a.ID(), b.ID()) }
	}
	sort.SliceStable(view, func(i, j int) bool {
		c := compare(view[i], view[j])
		if q.SortDirection == Desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return compareIDs(view[i].ID(), view[j].ID()) < 0
	})
	return view, nil
}

// Facets lists the values a filter can take over collection: "all", then the
// named values, then every distinct field value not already named.
func (e *Engine) Facets(collection []Record, key string) ([]string, error) {
	f, ok := e.filters[key]
	if !ok {
		return nil, errors.NewQueryError("no predicate registered for filter", key, errors.InvalidFilterKey)
	}
	values := []string{All}

	named := make([]string, 0, len(f.Named))
	for v := range f.Named {
		named = append(named, v)
	}
	sort.Strings(named)
	values = append(values, named...)

	if f.Compile != nil || f.Strict {
		return values, nil
	}
	field := f.Field
	if field == "" {
		field = f.Key
	}
	seen := make(map[string]struct{}, len(collection))
	for _, v := range named {
		seen[v] = struct{}{}
	}
	var distinct []string
	for _, r := range collection {
		v := Stringify(r[field])
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}
	sort.Strings(distinct)
	return append(values, distinct...), nil
}

func universe(n int) *roaring.Bitmap {
	bm := roaring.New()
	if n > 0 {
		bm.AddRange(0, uint64(n))
	}
	return bm
}

// matchTerm returns the positions whose searchable fields contain term.
// Every searchable field is matched case-folded; identifier fields also match
// the raw trimmed term.
func (e *Engine) matchTerm(collection []Record, term string) *roaring.Bitmap {
	raw := strings.TrimSpace(term)
	if raw == "" {
		return universe(len(collection))
	}
	folded := fold(raw)

	bm := roaring.New()
	for i, r := range collection {
		for _, f := range e.fields {
			if !f.Searchable {
				continue
			}
			s := Stringify(r[f.Name])
			if f.Kind == Identifier && strings.Contains(s, raw) {
				bm.Add(uint32(i))
				break
			}
			if strings.Contains(fold(s), folded) {
				bm.Add(uint32(i))
				break
			}
		}
	}
	return bm
}

func (e *Engine) matchFilter(collection []Record, p Predicate) *roaring.Bitmap {
	bm := roaring.New()
	for i, r := range collection {
		if p(r) {
			bm.Add(uint32(i))
		}
	}
	return bm
}
