package dirwalk

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparer orders two paths. It returns a negative number, zero or a positive
// number as a sorts before, equal to or after b.
type Comparer func(a, b string) int

// ByteOrder compares paths by raw bytes.
func ByteOrder(a, b string) int {
	return strings.Compare(a, b)
}

// LocaleEnv holds the environment variables consulted for collation, in the
// precedence POSIX gives them.
type LocaleEnv struct {
	All     string // LC_ALL
	Collate string // LC_COLLATE
	Lang    string // LANG
}

// LocaleEnvFromOS reads the collation variables from the process environment.
func LocaleEnvFromOS() LocaleEnv {
	return LocaleEnv{
		All:     os.Getenv("LC_ALL"),
		Collate: os.Getenv("LC_COLLATE"),
		Lang:    os.Getenv("LANG"),
	}
}

// Name returns the effective collation locale name.
func (e LocaleEnv) Name() string {
	for _, v := range []string{e.All, e.Collate, e.Lang} {
		if v != "" {
			return v
		}
	}
	return ""
}

// ParseLocale converts a POSIX locale name such as "de_DE.UTF-8@euro" into a
// language tag. It returns language.Und with ok=false for the C and POSIX
// locales, which collate by bytes.
func ParseLocale(name string) (tag language.Tag, ok bool, err error) {
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	switch name {
	case "", "C", "POSIX":
		return language.Und, false, nil
	}
	tag, err = language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return language.Und, false, fmt.Errorf("unsupported locale %q: %w", name, err)
	}
	return tag, true, nil
}

// NewCollator returns a Comparer for the given language. Paths the collator
// considers equal are ordered by bytes so that sorting stays deterministic.
// The returned Comparer is not safe for concurrent use.
func NewCollator(tag language.Tag) Comparer {
	c := collate.New(tag)
	return func(a, b string) int {
		if r := c.CompareString(a, b); r != 0 {
			return r
		}
		return strings.Compare(a, b)
	}
}

// ResolveComparer picks the collation for a locale name. It never fails: an
// unusable locale falls back to byte order and the error explains why.
func ResolveComparer(name string) (Comparer, error) {
	tag, ok, err := ParseLocale(name)
	if err != nil {
		return ByteOrder, err
	}
	if !ok {
		return ByteOrder, nil
	}
	return NewCollator(tag), nil
}
