// Command passgen prints freshly composed passwords to stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"

	"github.com/passforge/passforge-go/internal/config"
	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/model"
	"github.com/passforge/passforge-go/internal/service"
)

type options struct {
	length    int
	upper     bool
	lower     bool
	digits    bool
	special   bool
	count     int
	alphabets string
	hash      bool
	table     bool
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("passgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.IntVar(&opts.length, "length", service.DefaultLength, "password length")
	fs.BoolVar(&opts.upper, "upper", true, "include uppercase letters")
	fs.BoolVar(&opts.lower, "lower", true, "include lowercase letters")
	fs.BoolVar(&opts.digits, "digits", true, "include digits")
	fs.BoolVar(&opts.special, "special", true, "include special characters")
	fs.IntVar(&opts.count, "count", 1, "number of passwords")
	fs.StringVar(&opts.alphabets, "alphabets", os.Getenv("ALPHABETS_FILE"), "YAML file with alphabet overrides")
	fs.BoolVar(&opts.hash, "hash", false, "print an Argon2id hash next to each password")
	fs.BoolVar(&opts.table, "table", false, "render the output as a table")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "passgen:", err)
		return 2
	}

	alphabets, err := config.LoadAlphabets(opts.alphabets)
	if err != nil {
		fmt.Fprintln(stderr, "passgen:", err)
		return 1
	}
	composer, err := crypto.NewComposer(alphabets, nil)
	if err != nil {
		fmt.Fprintln(stderr, "passgen:", err)
		return 1
	}

	// A zero count would mean "one" to the service.
	if opts.count < 1 {
		fmt.Fprintln(stderr, "passgen:", service.ErrCountOutOfRange)
		return 1
	}

	svc := service.NewGeneratorService(composer, service.GeneratorConfig{})
	batch, err := svc.GenerateBatch(model.BatchGenerateRequest{
		GenerateRequest: model.GenerateRequest{
			Length:    nonZeroLength(opts.length),
			Uppercase: &opts.upper,
			Lowercase: &opts.lower,
			Numbers:   &opts.digits,
			Symbols:   &opts.special,
			Hash:      opts.hash,
		},
		Count: opts.count,
	})
	if err != nil {
		fmt.Fprintln(stderr, "passgen:", err)
		return 1
	}

	if opts.table {
		renderTable(stdout, batch.Passwords, opts.hash)
		return 0
	}
	for _, p := range batch.Passwords {
		if opts.hash {
			fmt.Fprintf(stdout, "%s\t%s\n", p.Password, p.Hash)
			continue
		}
		fmt.Fprintln(stdout, p.Password)
	}
	return 0
}

// nonZeroLength keeps an explicit -length=0 from being replaced by the service default.
func nonZeroLength(n int) int {
	if n == 0 {
		return -1
	}
	return n
}

func renderTable(w io.Writer, passwords []model.GenerateResponse, withHash bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"#", "Password", "Length"}
	if withHash {
		header = append(header, "Hash")
	}
	t.AppendHeader(header)

	for i, p := range passwords {
		row := table.Row{strconv.Itoa(i + 1), p.Password, p.Length}
		if withHash {
			row = append(row, p.Hash)
		}
		t.AppendRow(row)
	}
	t.Render()
}
