// Package catalog holds the static table of scoring events (point options) along with
// their base point value and display label
package catalog

import (
	"github.com/pkg/errors"
)

// ErrUnknownOption is returned when a key isn't part of the catalog
var ErrUnknownOption = errors.New("unknown point option")

// Option represents a scoring event
type Option struct {
	// Key is the identifier of the option as used in menus
	Key string

	// Label is the human-friendly name of the option
	Label string

	// BasePoints is the number of points the option is worth before any bonus
	BasePoints int
}

// options is ordered the way options are presented to users
var options = []Option{
	{Key: "horde5", Label: "5x Horde", BasePoints: 1},
	{Key: "horde3", Label: "3x Horde", BasePoints: 2},
	{Key: "single", Label: "Single", BasePoints: 6},
	{Key: "fishing", Label: "Fishing", BasePoints: 4},
	{Key: "feebas", Label: "Feebas", BasePoints: 5},
	{Key: "safari failed", Label: "Safari Failed", BasePoints: 1},
	{Key: "safari caught", Label: "Safari Caught", BasePoints: 7},
	{Key: "honey tree", Label: "Honey Tree", BasePoints: 8},
	{Key: "fossil", Label: "Fossil", BasePoints: 10},
	{Key: "egg", Label: "Egg", BasePoints: 12},
	{Key: "egg alpha", Label: "Egg Alpha", BasePoints: 20},
	{Key: "wild alpha", Label: "Wild Alpha", BasePoints: 35},
	{Key: "legendary", Label: "Legendary", BasePoints: 45},
}

var optionsByKey map[string]Option

func init() {
	optionsByKey = make(map[string]Option, len(options))
	for _, o := range options {
		optionsByKey[o.Key] = o
	}
}

// Lookup returns the option for the given key or ErrUnknownOption if the key isn't in the catalog
func Lookup(key string) (o Option, err error) {
	o, ok := optionsByKey[key]
	if !ok {
		return Option{}, errors.Wrapf(ErrUnknownOption, "[%s]", key)
	}

	return o, nil
}

// Options returns a copy of all options in presentation order
func Options() (all []Option) {
	all = make([]Option, len(options))
	copy(all, options)

	return all
}
