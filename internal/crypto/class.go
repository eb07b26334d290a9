package crypto

import (
	"fmt"
	"strings"
)

// CharacterClass identifies one of the alphabets a password can draw from.
type CharacterClass int

const (
	Uppercase CharacterClass = iota
	Lowercase
	Digit
	Special
)

// AllClasses lists every character class in canonical order.
var AllClasses = []CharacterClass{Uppercase, Lowercase, Digit, Special}

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars     = "0123456789"
	specialChars   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

func (c CharacterClass) String() string {
	switch c {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	case Digit:
		return "digit"
	case Special:
		return "special"
	default:
		return fmt.Sprintf("CharacterClass(%d)", int(c))
	}
}

func (c CharacterClass) valid() bool {
	return c >= Uppercase && c <= Special
}

// ParseCharacterClass maps a class name (or a common alias) to its CharacterClass.
func ParseCharacterClass(name string) (CharacterClass, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uppercase", "upper":
		return Uppercase, nil
	case "lowercase", "lower":
		return Lowercase, nil
	case "digit", "digits", "numbers":
		return Digit, nil
	case "special", "symbols":
		return Special, nil
	}
	return 0, fmt.Errorf("unknown character class %q", name)
}

// Alphabets maps each character class to the symbols it contributes.
type Alphabets map[CharacterClass]string

// DefaultAlphabets returns the built-in alphabet for every class.
func DefaultAlphabets() Alphabets {
	return Alphabets{
		Uppercase: uppercaseChars,
		Lowercase: lowercaseChars,
		Digit:     digitChars,
		Special:   specialChars,
	}
}

// Validate reports an error when any class is missing or has an empty alphabet.
func (a Alphabets) Validate() error {
	for _, c := range AllClasses {
		if a[c] == "" {
			return fmt.Errorf("alphabet for class %s is empty", c)
		}
	}
	return nil
}

// Merge returns a copy of a with every non-empty alphabet in overrides applied on top.
func (a Alphabets) Merge(overrides Alphabets) Alphabets {
	out := make(Alphabets, len(a))
	for c, s := range a {
		out[c] = s
	}
	for c, s := range overrides {
		if s != "" {
			out[c] = s
		}
	}
	return out
}
