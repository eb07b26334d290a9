package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/passforge/passforge-go/internal/crypto"
)

type alphabetsFile struct {
	Alphabets map[string]string `yaml:"alphabets"`
}

// LoadAlphabets reads alphabet overrides from a YAML file and applies them on top of the
// defaults. An empty path returns the defaults.
func LoadAlphabets(path string) (crypto.Alphabets, error) {
	if path == "" {
		return crypto.DefaultAlphabets(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open alphabets file: %w", err)
	}
	defer file.Close()

	var parsed alphabetsFile
	if err := yaml.NewDecoder(file).Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse alphabets file: %w", err)
	}

	return parseAlphabets(parsed.Alphabets)
}

func parseAlphabets(raw map[string]string) (crypto.Alphabets, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	overrides := make(crypto.Alphabets, len(raw))
	setBy := make(map[crypto.CharacterClass]string, len(raw))
	for _, name := range names {
		class, err := crypto.ParseCharacterClass(name)
		if err != nil {
			return nil, err
		}
		if prev, ok := setBy[class]; ok {
			return nil, fmt.Errorf("alphabets.%s and alphabets.%s both set the %s alphabet", prev, name, class)
		}
		symbols := raw[name]
		if symbols == "" {
			return nil, fmt.Errorf("alphabets.%s must not be empty", name)
		}
		setBy[class] = name
		overrides[class] = symbols
	}
	return crypto.DefaultAlphabets().Merge(overrides), nil
}
