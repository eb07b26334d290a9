package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// ErrInvalidRequest is the sentinel every rejected composition request unwraps to.
var ErrInvalidRequest = errors.New("invalid request")

// InvalidRequestError describes why a request cannot be composed.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return e.Reason
}

func (e *InvalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

var (
	ErrNoCharacterClasses    = &InvalidRequestError{Reason: "at least one character class must be selected"}
	ErrUnknownCharacterClass = &InvalidRequestError{Reason: "unknown character class"}
	ErrLengthInsufficient    = &InvalidRequestError{Reason: "password length must be at least equal to the number of selected character classes"}
)

// Request describes a password to compose.
type Request struct {
	Length  int
	Classes []CharacterClass
}

// Composer builds passwords from a fixed set of alphabets and a random source.
// It holds no mutable state and is safe for concurrent use.
type Composer struct {
	alphabets map[CharacterClass][]rune
	random    io.Reader
}

// NewComposer validates the alphabets and returns a Composer drawing from random.
// A nil random source selects crypto/rand.
func NewComposer(alphabets Alphabets, random io.Reader) (*Composer, error) {
	if err := alphabets.Validate(); err != nil {
		return nil, err
	}
	if random == nil {
		random = rand.Reader
	}

	runes := make(map[CharacterClass][]rune, len(AllClasses))
	for _, c := range AllClasses {
		runes[c] = []rune(alphabets[c])
	}

	return &Composer{alphabets: runes, random: random}, nil
}

var defaultComposer = mustComposer(DefaultAlphabets())

func mustComposer(a Alphabets) *Composer {
	c, err := NewComposer(a, nil)
	if err != nil {
		panic(err)
	}
	return c
}

// Compose builds a password with the default alphabets and crypto/rand.
func Compose(req Request) (string, error) {
	return defaultComposer.Compose(req)
}

// Alphabet returns the symbols drawn for class c.
func (c *Composer) Alphabet(class CharacterClass) string {
	return string(c.alphabets[class])
}

// Compose returns a password of exactly req.Length characters containing at least one
// character of every requested class, with the guaranteed characters at random positions.
func (c *Composer) Compose(req Request) (string, error) {
	classes, err := distinctClasses(req.Classes)
	if err != nil {
		return "", err
	}
	if req.Length < len(classes) {
		return "", ErrLengthInsufficient
	}

	var pool []rune
	for _, class := range classes {
		pool = append(pool, c.alphabets[class]...)
	}

	result := make([]rune, req.Length)

	// One guaranteed character per class.
	for i, class := range classes {
		ch, err := c.randRune(c.alphabets[class])
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	for i := len(classes); i < req.Length; i++ {
		ch, err := c.randRune(pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := c.shuffle(result); err != nil {
		return "", err
	}

	return string(result), nil
}

func distinctClasses(in []CharacterClass) ([]CharacterClass, error) {
	if len(in) == 0 {
		return nil, ErrNoCharacterClasses
	}

	seen := make(map[CharacterClass]bool, len(in))
	out := make([]CharacterClass, 0, len(in))
	for _, class := range in {
		if !class.valid() {
			return nil, ErrUnknownCharacterClass
		}
		if seen[class] {
			continue
		}
		seen[class] = true
		out = append(out, class)
	}
	return out, nil
}

// randIndex returns a uniform index in [0, n).
func (c *Composer) randIndex(n int) (int, error) {
	v, err := rand.Int(c.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(v.Int64()), nil
}

func (c *Composer) randRune(alphabet []rune) (rune, error) {
	i, err := c.randIndex(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

// shuffle performs a Fisher-Yates shuffle.
func (c *Composer) shuffle(data []rune) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := c.randIndex(i + 1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}
