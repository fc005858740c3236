package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/content"
	"github.com/mrlokans/bookshelf/internal/pagination"
)

// PaginateCommand splits a book file into pages and prints them.
type PaginateCommand struct {
	File     string
	Budgets  pagination.Budgets
	Page     int
	Verbose  bool
	MaxBytes int64

	Out io.Writer
}

func NewPaginateCommand() *PaginateCommand {
	return &PaginateCommand{Out: os.Stdout}
}

func (cmd *PaginateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("paginate", flag.ContinueOnError)
	cfg := config.NewConfig()
	defaults := cfg.Pagination.Budgets()
	var measure string

	fs.StringVar(&cmd.File, "file", "", "Book file to paginate: "+formatList()+" (required)")
	fs.IntVar(&cmd.Budgets.WordsPerPage, "words", defaults.WordsPerPage, "Word budget per page")
	fs.IntVar(&cmd.Budgets.MinLinesPerPage, "min", defaults.MinLinesPerPage, "Minimum estimated lines per page")
	fs.IntVar(&cmd.Budgets.MaxLinesPerPage, "max", defaults.MaxLinesPerPage, "Maximum estimated lines per page")
	fs.IntVar(&cmd.Budgets.CharsPerLine, "cpl", defaults.CharsPerLine, "Characters per estimated line")
	fs.StringVar(&measure, "measure", string(defaults.Measure), "Width measure: runes or cells")
	fs.IntVar(&cmd.Budgets.RebalancePasses, "passes", defaults.RebalancePasses, "Rebalancing passes (1 = single pass)")
	fs.IntVar(&cmd.Page, "page", 0, "Print the text of this page (1-based)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print a word and line summary of every page")
	fs.Int64Var(&cmd.MaxBytes, "max-bytes", cfg.Library.ContentMaxBytes, "Largest file accepted, in bytes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s paginate [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Split a book into pages with the reader's pagination rules.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s paginate -file ./books/dune.epub\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s paginate -file ./books/notes.md -words 80 -verbose\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s paginate -file ./books/essay.txt -page 3\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.File == "" {
		fs.Usage()
		return fmt.Errorf("file is required")
	}
	if measure != string(pagination.MeasureRunes) && measure != string(pagination.MeasureCells) {
		return fmt.Errorf("measure must be %q or %q", pagination.MeasureRunes, pagination.MeasureCells)
	}
	cmd.Budgets.Measure = pagination.Measure(measure)
	if cmd.Page < 0 {
		return fmt.Errorf("page must not be negative")
	}

	return nil
}

func (cmd *PaginateCommand) Run(ctx context.Context) error {
	absFile, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	text, err := content.NewLoader(filepath.Dir(absFile), cmd.MaxBytes).LoadFile(ctx, absFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.File, err)
	}

	budgets := cmd.Budgets.Normalize()
	result := pagination.Paginate(text, budgets)

	fmt.Fprintf(cmd.Out, "File: %s\n", absFile)
	fmt.Fprintf(cmd.Out, "Budgets: %s\n", budgets.Key())
	fmt.Fprintf(cmd.Out, "Total pages: %d\n", result.TotalPages)

	if cmd.Verbose && result.TotalPages > 0 {
		est := pagination.NewEstimator(budgets)
		fmt.Fprintf(cmd.Out, "\n%6s %8s %8s\n", "page", "words", "lines")
		for i, page := range result.Pages {
			var words, lines int
			for _, paragraph := range pagination.Segment(page) {
				e := est.Estimate(paragraph)
				words += e.Words
				lines += e.Lines
			}
			fmt.Fprintf(cmd.Out, "%6d %8d %8d\n", i+1, words, lines)
		}
	}

	if cmd.Page > 0 {
		page, ok := result.Page(cmd.Page)
		if !ok {
			return fmt.Errorf("page %d out of range (1-%d)", cmd.Page, result.TotalPages)
		}
		fmt.Fprintf(cmd.Out, "\n--- Page %d of %d ---\n%s\n", cmd.Page, result.TotalPages, page)
	}

	return nil
}

func formatList() string {
	var names []string
	for _, f := range content.SupportedFormats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
