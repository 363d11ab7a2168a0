// Package language validates ISO 639-3 language codes against the canonical
// reference table. The set is loaded once via Load; after that the validator
// is immutable and safe for concurrent use.
package language

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strings"
)

// Validator holds the canonical ISO 639-3 code set. Construct via Load; the
// zero value rejects everything.
type Validator struct {
	codes map[string]struct{}
}

// Load reads the tab-separated reference table from src and builds a
// Validator. The first column of each row is the 3-letter code; rows with a
// blank first column or fewer than two columns are skipped. Loading fails if
// the table cannot be read or yields no codes: mapping correctness depends on
// the set, so a partially-initialized validator must never be handed out.
func Load(ctx context.Context, src Source) (*Validator, error) {
	r, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open language table: %w", err)
	}
	defer r.Close()

	codes := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 2 {
			continue
		}
		code := strings.TrimSpace(fields[0])
		if len(code) != 3 {
			// Header row or malformed line.
			continue
		}
		codes[strings.ToLower(code)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read language table: %w", err)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("language table yielded no codes")
	}

	return &Validator{codes: codes}, nil
}

// IsValid reports whether code is a well-formed, known ISO 639-3 code.
// Comparison is case-insensitive.
func (v *Validator) IsValid(code string) bool {
	if len(code) != 3 {
		return false
	}
	_, ok := v.codes[strings.ToLower(code)]
	return ok
}

// All returns the full code set, sorted, for diagnostics and autocomplete.
func (v *Validator) All() []string {
	out := make([]string, 0, len(v.codes))
	for code := range v.codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
