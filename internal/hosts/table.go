// Package hosts models the operating system's static host table.
//
// A Table keeps every line of the file in order. Lines of the form
//
//	<address><spaces or tabs><domain>[ <alias>...][ # comment]
//
// are indexed as entries; everything else (comments, blank lines, IPv6
// lines, malformed addresses) is carried through untouched so that
// Serialize returns the original bytes when nothing was changed.
//
// A Table is not safe for concurrent use, and File does no locking:
// two processes editing the same hosts file at once can lose updates.
package hosts

import (
	"fmt"
	"strings"

	"github.com/ksyq12/vhostsync/internal/address"
	verrors "github.com/ksyq12/vhostsync/internal/errors"
)

// Entry maps a domain (and optional aliases) to an address.
type Entry struct {
	Address address.Address `json:"address"`
	Domain  string          `json:"domain"`
	Aliases []string        `json:"aliases,omitempty"`
}

// NewEntry returns an entry without aliases.
func NewEntry(addr address.Address, domain string) Entry {
	return Entry{Address: addr, Domain: domain}
}

// String returns the canonical line form, address<TAB>domain.
func (e Entry) String() string {
	s := e.Address.String() + "\t" + e.Domain
	if len(e.Aliases) > 0 {
		s += " " + strings.Join(e.Aliases, " ")
	}
	return s
}

func (e Entry) names(name string) bool {
	if e.Domain == name {
		return true
	}
	for _, a := range e.Aliases {
		if a == name {
			return true
		}
	}
	return false
}

type line struct {
	raw   string
	entry *Entry
}

// Table is the parsed content of a host table.
type Table struct {
	lines []line
}

// Parse splits raw on line boundaries and indexes the entry lines.
func Parse(raw string) *Table {
	parts := strings.Split(raw, "\n")
	t := &Table{lines: make([]line, 0, len(parts))}
	for _, p := range parts {
		l := line{raw: p}
		if e, ok := parseEntry(p); ok {
			l.entry = &e
		}
		t.lines = append(t.lines, l)
	}
	return t
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

func parseEntry(raw string) (Entry, bool) {
	body := strings.TrimSuffix(raw, "\r")
	if i := strings.IndexByte(body, '#'); i >= 0 {
		body = body[:i]
	}
	if body == "" || isBlank(rune(body[0])) {
		return Entry{}, false
	}
	fields := strings.FieldsFunc(body, isBlank)
	if len(fields) < 2 {
		return Entry{}, false
	}
	addr, err := address.Parse(fields[0])
	if err != nil {
		return Entry{}, false
	}
	e := Entry{Address: addr, Domain: fields[1]}
	if len(fields) > 2 {
		e.Aliases = append([]string(nil), fields[2:]...)
	}
	return e, true
}

// Lookup returns the address of the first entry naming domain, either as
// its domain or as an alias. Matching is exact and case-sensitive.
func (t *Table) Lookup(domain string) (address.Address, bool) {
	for _, l := range t.lines {
		if l.entry != nil && l.entry.names(domain) {
			return l.entry.Address, true
		}
	}
	return address.Address{}, false
}

// Contains reports whether an entry with both e's domain and address exists.
func (t *Table) Contains(e Entry) bool {
	for _, l := range t.lines {
		if l.entry != nil && l.entry.Domain == e.Domain && l.entry.Address == e.Address {
			return true
		}
	}
	return false
}

// Entries returns the indexed entries in file order.
func (t *Table) Entries() []Entry {
	var entries []Entry
	for _, l := range t.lines {
		if l.entry != nil {
			entries = append(entries, *l.entry)
		}
	}
	return entries
}

// Len returns the number of indexed entries.
func (t *Table) Len() int {
	n := 0
	for _, l := range t.lines {
		if l.entry != nil {
			n++
		}
	}
	return n
}

// Add appends e as a new canonical line. It fails with DUPLICATE_DOMAIN
// when the domain is already mapped; existing entries are never overwritten.
func (t *Table) Add(e Entry) error {
	if err := validateDomain(e.Domain); err != nil {
		return err
	}
	if _, ok := t.Lookup(e.Domain); ok {
		return verrors.DuplicateDomain(e.Domain)
	}

	added := e
	added.Aliases = nil
	l := line{raw: added.String(), entry: &added}

	// A trailing empty element means the text is empty or ends with a
	// newline; the new line takes its place so no blank line is introduced.
	last := len(t.lines) - 1
	if last >= 0 && t.lines[last].raw == "" {
		t.lines[last] = l
		return nil
	}
	// The line before the new one gets the table's line ending.
	if last >= 0 && t.crlf() && !strings.HasSuffix(t.lines[last].raw, "\r") {
		t.lines[last].raw += "\r"
	}
	t.lines = append(t.lines, l)
	return nil
}

// crlf reports whether the table's lines end in CRLF.
func (t *Table) crlf() bool {
	for _, l := range t.lines {
		if strings.HasSuffix(l.raw, "\r") {
			return true
		}
	}
	return false
}

// Remove drops every entry line whose domain is domain, keeping all other
// lines in their original order. A name that is only an alias is not
// removed; the whole line belongs to its primary domain.
func (t *Table) Remove(domain string) error {
	kept := make([]line, 0, len(t.lines))
	removed := 0
	for _, l := range t.lines {
		if l.entry != nil && l.entry.Domain == domain {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	if removed == 0 {
		for _, e := range t.Entries() {
			if e.names(domain) {
				return verrors.NotFound(domain, fmt.Sprintf("host entry not found (alias of %s)", e.Domain))
			}
		}
		return verrors.NotFound(domain, "host entry not found")
	}
	t.lines = kept
	return nil
}

// Update replaces the entry for domain with e, as remove followed by add.
// The table is left unchanged when either step fails.
func (t *Table) Update(domain string, e Entry) error {
	saved := append([]line(nil), t.lines...)
	if err := t.Remove(domain); err != nil {
		return err
	}
	if err := t.Add(e); err != nil {
		t.lines = saved
		return err
	}
	return nil
}

// Serialize returns the full text of the table.
func (t *Table) Serialize() string {
	raws := make([]string, len(t.lines))
	for i, l := range t.lines {
		raws[i] = l.raw
	}
	return strings.Join(raws, "\n")
}

func validateDomain(domain string) error {
	if domain == "" {
		return verrors.Validation("domain cannot be empty")
	}
	if strings.ContainsAny(domain, " \t\r\n#") {
		return verrors.Validation(fmt.Sprintf("domain %q cannot contain whitespace or '#'", domain))
	}
	return nil
}
