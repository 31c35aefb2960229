package dataset

import (
	"net/mail"
	"strings"
	"unicode"

	"admindash/internal/query"
)

// Contact flags written by AnnotateContacts
const (
	FlagDuplicate    = "duplicate"
	FlagInvalidEmail = "invalidEmail"
)

// ValidEmail reports whether s is a bare address (no display name) whose
// domain has at least one dot.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

func phoneKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AnnotateContacts returns copies of records with the duplicate and
// invalidEmail flags derived. A contact is a duplicate when another contact
// has the same email ignoring case or the same phone digits.
func AnnotateContacts(records []query.Record) []query.Record {
	emails := make(map[string]int, len(records))
	phones := make(map[string]int, len(records))
	for _, r := range records {
		if e := strings.ToLower(strings.TrimSpace(r.String("email"))); e != "" {
			emails[e]++
		}
		if p := phoneKey(r.String("phone")); p != "" {
			phones[p]++
		}
	}

	out := make([]query.Record, len(records))
	for i, r := range records {
		dup := r.Clone()
		e := strings.ToLower(strings.TrimSpace(r.String("email")))
		p := phoneKey(r.String("phone"))
		dup[FlagDuplicate] = (e != "" && emails[e] > 1) || (p != "" && phones[p] > 1)
		dup[FlagInvalidEmail] = !ValidEmail(r.String("email"))
		out[i] = dup
	}
	return out
}

func flagged(flag string) query.Predicate {
	return func(r query.Record) bool {
		v, _ := r[flag].(bool)
		return v
	}
}

var (
	isDuplicate    = flagged(FlagDuplicate)
	isInvalidEmail = flagged(FlagInvalidEmail)
	isCleanContact = func(r query.Record) bool { return !isDuplicate(r) && !isInvalidEmail(r) }
)
