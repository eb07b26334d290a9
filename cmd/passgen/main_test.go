package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/passforge/passforge-go/internal/crypto"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("ALPHABETS_FILE", "")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunPrintsPasswords(t *testing.T) {
	code, out, errOut := runCLI(t, "-length", "20", "-count", "3")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 passwords, got %d: %q", len(lines), out)
	}
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n != 20 {
			t.Errorf("expected length 20, got %d (%q)", n, line)
		}
	}
}

func TestRunDigitsOnly(t *testing.T) {
	code, out, errOut := runCLI(t, "-length", "6", "-upper=false", "-lower=false", "-special=false")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}

	password := strings.TrimSpace(out)
	if len(password) != 6 {
		t.Fatalf("expected 6 characters, got %q", password)
	}
	for _, r := range password {
		if r < '0' || r > '9' {
			t.Errorf("unexpected non-digit %q in %q", r, password)
		}
	}
}

func TestRunTableWithHash(t *testing.T) {
	code, out, errOut := runCLI(t, "-length", "10", "-count", "2", "-table", "-hash")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	if !strings.Contains(out, "PASSWORD") || !strings.Contains(out, "HASH") {
		t.Errorf("expected table header, got:\n%s", out)
	}
	if strings.Count(out, "$argon2id$") != 2 {
		t.Errorf("expected two hashes in output, got:\n%s", out)
	}
}

func TestRunCustomAlphabets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alphabets.yaml")
	if err := os.WriteFile(path, []byte("alphabets:\n  digit: \"7\"\n"), 0o600); err != nil {
		t.Fatalf("writing alphabets file: %v", err)
	}

	code, out, errOut := runCLI(t, "-alphabets", path, "-length", "5", "-upper=false", "-lower=false", "-special=false")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut)
	}
	if got := strings.TrimSpace(out); got != "77777" {
		t.Errorf("expected 77777, got %q", got)
	}
}

func TestRunInvalidRequests(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "no classes",
			args:     []string{"-upper=false", "-lower=false", "-digits=false", "-special=false"},
			wantCode: 1,
			wantErr:  crypto.ErrNoCharacterClasses.Error(),
		},
		{
			name:     "length below class count",
			args:     []string{"-length", "3"},
			wantCode: 1,
			wantErr:  crypto.ErrLengthInsufficient.Error(),
		},
		{
			name:     "zero length",
			args:     []string{"-length", "0"},
			wantCode: 1,
			wantErr:  crypto.ErrLengthInsufficient.Error(),
		},
		{
			name:     "zero count",
			args:     []string{"-count", "0"},
			wantCode: 1,
			wantErr:  "count is out of range",
		},
		{
			name:     "missing alphabets file",
			args:     []string{"-alphabets", "does-not-exist.yaml"},
			wantCode: 1,
			wantErr:  "alphabets file",
		},
		{
			name:     "unknown flag",
			args:     []string{"-colour"},
			wantCode: 2,
			wantErr:  "flag provided but not defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, tt.args...)
			if code != tt.wantCode {
				t.Errorf("expected exit %d, got %d", tt.wantCode, code)
			}
			if out != "" {
				t.Errorf("expected no stdout, got %q", out)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("expected stderr to contain %q, got %q", tt.wantErr, errOut)
			}
		})
	}
}
