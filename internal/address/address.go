// Package address parses and formats the IPv4 addresses that appear in
// host-table lines and VirtualHost headers.
//
// Only the canonical dotted-quad form is accepted: four groups of one to
// three decimal digits, each at most 255, without leading zeros. Formatting
// always emits exactly four octets and three dots, nothing else.
package address

import (
	"strconv"
	"strings"

	verrors "github.com/ksyq12/vhostsync/internal/errors"
)

// Address is an IPv4 address as four octets.
type Address [4]byte

// Loopback returns 127.0.0.1.
func Loopback() Address {
	return Address{127, 0, 0, 1}
}

// Parse parses a canonical dotted quad.
func Parse(text string) (Address, error) {
	var a Address
	groups := strings.Split(text, ".")
	if len(groups) != 4 {
		return a, verrors.InvalidAddress(text)
	}
	for i, g := range groups {
		if !isOctet(g) {
			return a, verrors.InvalidAddress(text)
		}
		n, err := strconv.ParseUint(g, 10, 8)
		if err != nil {
			return a, verrors.InvalidAddress(text)
		}
		a[i] = byte(n)
	}
	return a, nil
}

// MustParse is like Parse but panics on invalid input.
// Intended for constants and tests.
func MustParse(text string) Address {
	a, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return a
}

// isOctet reports whether g is 1-3 ASCII digits with no leading zero.
func isOctet(g string) bool {
	if len(g) == 0 || len(g) > 3 {
		return false
	}
	if len(g) > 1 && g[0] == '0' {
		return false
	}
	for i := 0; i < len(g); i++ {
		if g[i] < '0' || g[i] > '9' {
			return false
		}
	}
	return true
}

// String returns the canonical dotted-quad form.
func (a Address) String() string {
	var b strings.Builder
	b.Grow(15)
	for i, o := range a {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(int(o)))
	}
	return b.String()
}

// Format is String as a function, for symmetry with Parse.
func Format(a Address) string {
	return a.String()
}

// IsLoopback reports whether a is in 127.0.0.0/8.
func (a Address) IsLoopback() bool {
	return a[0] == 127
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
