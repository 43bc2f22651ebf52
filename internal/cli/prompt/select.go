// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/store"
)

// Sentinel errors for record selection.
var (
	ErrNoRecords          = errors.New("no apps to select from")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// FindMultiFunc matches the signature of fuzzyfinder.FindMulti.
type FindMultiFunc func(slice any, itemFunc func(i int) string, opts ...fuzzyfinder.Option) ([]int, error)

// Selector handles interactive prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
	find   FindMultiFunc
}

// NewSelector creates a new Selector using stdin, stdout and the terminal
// fuzzy finder.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
		find:   fuzzyfinder.FindMulti,
	}
}

// NewSelectorWithIO creates a Selector with custom IO and finder for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer, find FindMultiFunc) *Selector {
	return &Selector{
		reader: r,
		writer: w,
		find:   find,
	}
}

// SelectRecords lets the user pick a subset of records with a fuzzy finder.
// The result keeps the input order.
//
// Returns:
//   - ErrNoRecords if the list is empty
//   - ErrSelectionCancelled if the finder is aborted (Esc, Ctrl+C)
func (s *Selector) SelectRecords(records []store.Record) ([]store.Record, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	idxs, err := s.find(
		records,
		func(i int) string {
			return records[i].Name
		},
		fuzzyfinder.WithPromptString("save> "),
		fuzzyfinder.WithHeader("Tab to toggle, Enter to confirm"),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return describe(records[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	slices.Sort(idxs)
	idxs = slices.Compact(idxs)
	picked := make([]store.Record, 0, len(idxs))
	for _, i := range idxs {
		if i >= 0 && i < len(records) {
			picked = append(picked, records[i])
		}
	}
	return picked, nil
}

// Confirm asks a yes/no question. Anything other than y or yes is a no;
// EOF cancels.
func (s *Selector) Confirm(question string) (bool, error) {
	fmt.Fprintf(s.writer, "%s [y/N]: ", question)

	input, err := bufio.NewReader(s.reader).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(input) == "" {
			return false, ErrSelectionCancelled
		}
		if !errors.Is(err, io.EOF) {
			return false, errors.Wrap(err, "reading answer")
		}
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func describe(r store.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:      %s\n", r.Name)
	fmt.Fprintf(&b, "Platform:  %s\n", r.Platform)
	if r.Version != "" {
		fmt.Fprintf(&b, "Version:   %s\n", r.Version)
	}
	if r.Source != "" {
		fmt.Fprintf(&b, "Source:    %s\n", r.Source)
	}
	fmt.Fprintf(&b, "Installed: %t\n", r.Installed)
	return b.String()
}
