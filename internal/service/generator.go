package service

import (
	"fmt"
	"unicode/utf8"

	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/model"
)

const (
	DefaultLength         = 16
	DefaultMaxLength      = 128
	DefaultMaxCount       = 50
	DefaultMaxHashedCount = 5 // batch size limit when hash is requested
)

var (
	ErrLengthTooLong         = &crypto.InvalidRequestError{Reason: "password length exceeds the allowed maximum"}
	ErrCountOutOfRange       = &crypto.InvalidRequestError{Reason: "count is out of range"}
	ErrHashedCountOutOfRange = &crypto.InvalidRequestError{Reason: "count is out of range for hashed passwords"}
)

// GeneratorConfig bounds what a single API request may ask for.
type GeneratorConfig struct {
	MaxLength      int
	MaxCount       int
	MaxHashedCount int
	HashParams     crypto.HashParams
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	composer *crypto.Composer
	cfg      GeneratorConfig
}

// NewGeneratorService creates a new GeneratorService. Zero limits fall back to the defaults.
func NewGeneratorService(composer *crypto.Composer, cfg GeneratorConfig) *GeneratorService {
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = DefaultMaxLength
	}
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = DefaultMaxCount
	}
	if cfg.MaxHashedCount <= 0 {
		cfg.MaxHashedCount = DefaultMaxHashedCount
	}
	if cfg.HashParams == (crypto.HashParams{}) {
		cfg.HashParams = crypto.DefaultHashParams()
	}
	return &GeneratorService{composer: composer, cfg: cfg}
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	length := req.Length
	if length == 0 {
		length = DefaultLength
	}
	if length > s.cfg.MaxLength {
		return model.GenerateResponse{}, fmt.Errorf("%w: %d", ErrLengthTooLong, s.cfg.MaxLength)
	}

	password, err := s.composer.Compose(crypto.Request{
		Length:  length,
		Classes: classesFor(req),
	})
	if err != nil {
		return model.GenerateResponse{}, err
	}

	resp := model.GenerateResponse{
		Password: password,
		Length:   utf8.RuneCountInString(password),
	}

	if req.Hash {
		resp.Hash, err = crypto.HashPassword(password, s.cfg.HashParams)
		if err != nil {
			return model.GenerateResponse{}, fmt.Errorf("hashing password: %w", err)
		}
	}

	return resp, nil
}

// GenerateBatch produces req.Count passwords (one when unset) with shared options.
func (s *GeneratorService) GenerateBatch(req model.BatchGenerateRequest) (model.BatchGenerateResponse, error) {
	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 1 || count > s.cfg.MaxCount {
		return model.BatchGenerateResponse{}, fmt.Errorf("%w: must be between 1 and %d", ErrCountOutOfRange, s.cfg.MaxCount)
	}
	if req.Hash && count > s.cfg.MaxHashedCount {
		return model.BatchGenerateResponse{}, fmt.Errorf("%w: at most %d", ErrHashedCountOutOfRange, s.cfg.MaxHashedCount)
	}

	out := model.BatchGenerateResponse{Passwords: make([]model.GenerateResponse, 0, count)}
	for i := 0; i < count; i++ {
		resp, err := s.Generate(req.GenerateRequest)
		if err != nil {
			return model.BatchGenerateResponse{}, err
		}
		out.Passwords = append(out.Passwords, resp)
	}

	return out, nil
}

func classesFor(req model.GenerateRequest) []crypto.CharacterClass {
	var classes []crypto.CharacterClass
	if boolOrDefault(req.Uppercase, true) {
		classes = append(classes, crypto.Uppercase)
	}
	if boolOrDefault(req.Lowercase, true) {
		classes = append(classes, crypto.Lowercase)
	}
	if boolOrDefault(req.Numbers, true) {
		classes = append(classes, crypto.Digit)
	}
	if boolOrDefault(req.Symbols, true) {
		classes = append(classes, crypto.Special)
	}
	return classes
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
