package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind selects how a field is searched and compared.
type Kind int

const (
	// Text fields are searched and sorted case-folded.
	Text Kind = iota
	// Identifier fields (ids, IP addresses, emails) are searched without case
	// folding so exact tokens match, and sort lexically.
	Identifier
	// Timestamp fields sort as parsed instants.
	Timestamp
	// Number fields sort numerically.
	Number
	// Enum fields hold one of a small set of values and sort lexically.
	Enum
	// Bool fields sort false before true.
	Bool
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Identifier:
		return "identifier"
	case Timestamp:
		return "timestamp"
	case Number:
		return "number"
	case Enum:
		return "enum"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field declares one field of a screen's record shape.
type Field struct {
	Name       string
	Kind       Kind
	Searchable bool
}

// IDField is the identity field every record carries.
const IDField = "id"

// Record is one queryable item. Values are scalars: string, bool, any integer or
// float type, or time.Time.
type Record map[string]any

// ID returns the record identity as a string.
func (r Record) ID() string {
	return Stringify(r[IDField])
}

// String returns the string form of the named field.
func (r Record) String(field string) string {
	return Stringify(r[field])
}

// Clone returns a shallow copy so callers can derive records without touching
// the input collection.
func (r Record) Clone() Record {
	dup := make(Record, len(r)+2)
	for k, v := range r {
		dup[k] = v
	}
	return dup
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Stringify renders a scalar the way it is searched and equality-filtered.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// ParseTime coerces a timestamp-like value to an instant. Unparseable values
// become the zero time so they sort first.
func ParseTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val != nil {
			return *val
		}
	case string:
		trimmed := strings.TrimSpace(val)
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t
			}
		}
	case int64:
		return time.Unix(val, 0).UTC()
	case int:
		return time.Unix(int64(val), 0).UTC()
	}
	return time.Time{}
}

func toFloat(v any) float64 {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	case float64:
		return val
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
	}
	return 0
}

func toBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(val))
		return b
	}
	return false
}

func fold(s string) string {
	return strings.ToLower(s)
}

// compareValues orders two values of the given kind, ascending.
func compareValues(kind Kind, a, b any) int {
	switch kind {
	case Timestamp:
		return ParseTime(a).Compare(ParseTime(b))
	case Number:
		fa, fb := toFloat(a), toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case Bool:
		ba, bb := toBool(a), toBool(b)
		if ba == bb {
			return 0
		}
		if !ba {
			return -1
		}
		return 1
	case Text:
		return strings.Compare(fold(Stringify(a)), fold(Stringify(b)))
	default:
		return strings.Compare(Stringify(a), Stringify(b))
	}
}

// compareIDs orders ids numerically when both are integers, lexically otherwise.
func compareIDs(a, b string) int {
	ia, errA := strconv.ParseInt(a, 10, 64)
	ib, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case ia < ib:
			return -1
		case ia > ib:
			return 1
		}
		return 0
	}
	if errA == nil {
		return -1
	}
	if errB == nil {
		return 1
	}
	return strings.Compare(a, b)
}
