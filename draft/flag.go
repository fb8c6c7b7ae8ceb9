package draft

import (
	"github.com/pkg/errors"
)

// ErrUnknownFlag is returned when parsing a value that isn't a known bonus flag
var ErrUnknownFlag = errors.New("unknown flag")

// Flag is an optional bonus modifier applied to a draft's points when committed
type Flag string

// Known flags
const (
	Secret Flag = "secret"
	Lure   Flag = "lure"
)

// Flags lists every flag in display order
var Flags = []Flag{Secret, Lure}

type flagInfo struct {
	bit   FlagSet
	bonus int
	label string
}

var flagInfos = map[Flag]flagInfo{
	Secret: {bit: 1 << 0, bonus: 3, label: "Secret"},
	Lure:   {bit: 1 << 1, bonus: 1, label: "Lure"},
}

// ParseFlag returns the Flag for the given identifier
func ParseFlag(s string) (f Flag, err error) {
	f = Flag(s)
	if _, ok := flagInfos[f]; !ok {
		return "", errors.Wrapf(ErrUnknownFlag, "[%s]", s)
	}

	return f, nil
}

// Bonus returns the points added by the flag
func (f Flag) Bonus() int {
	return flagInfos[f].bonus
}

// Label returns the display name of the flag
func (f Flag) Label() string {
	if fi, ok := flagInfos[f]; ok {
		return fi.label
	}

	return string(f)
}

// FlagSet is a set of flags. The zero value is the empty set
type FlagSet uint8

// Has returns true if f is part of the set
func (fs FlagSet) Has(f Flag) bool {
	return fs&flagInfos[f].bit != 0
}

// Toggle returns a copy of the set with the membership of f flipped
func (fs FlagSet) Toggle(f Flag) FlagSet {
	return fs ^ flagInfos[f].bit
}

// With returns a copy of the set including f
func (fs FlagSet) With(f Flag) FlagSet {
	return fs | flagInfos[f].bit
}

// Bonus returns the sum of the bonuses of all flags in the set
func (fs FlagSet) Bonus() (bonus int) {
	for _, f := range Flags {
		if fs.Has(f) {
			bonus += f.Bonus()
		}
	}

	return bonus
}

// List returns the flags in the set in display order
func (fs FlagSet) List() (flags []Flag) {
	flags = make([]Flag, 0, len(Flags))
	for _, f := range Flags {
		if fs.Has(f) {
			flags = append(flags, f)
		}
	}

	return flags
}
