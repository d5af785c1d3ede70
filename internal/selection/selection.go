// Package selection turns a page selection expression into the ordered list
// of source pages a booklet is built from.
package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// EmptySelectionError is returned when an expression names no page of the
// document.
type EmptySelectionError struct {
	Expression string
	Total      int
}

func (e *EmptySelectionError) Error() string {
	return fmt.Sprintf("no valid pages in %q for a %d page document", e.Expression, e.Total)
}

// Select parses expr against a document of total pages and returns 0-based
// page indexes in the order the expression lists them.
//
// The expression is a comma separated list of 1-based page numbers and
// inclusive ranges such as "1-4,7,12-9". A range whose end is lower than its
// start is walked downwards. Pages may repeat. Terms that do not parse and
// numbers outside 1..total are skipped; ranges keep only the pages that exist.
// An empty expression selects every page.
func Select(expr string, total int) ([]int, error) {
	if strings.TrimSpace(expr) == "" {
		return All(total), nil
	}

	var pages []int
	for _, term := range strings.Split(expr, ",") {
		start, end, ok := parseTerm(term)
		if !ok {
			continue
		}
		if start <= end {
			for p := max(start, 1); p <= min(end, total); p++ {
				pages = append(pages, p-1)
			}
		} else {
			for p := min(start, total); p >= max(end, 1); p-- {
				pages = append(pages, p-1)
			}
		}
	}

	if len(pages) == 0 {
		return nil, &EmptySelectionError{Expression: expr, Total: total}
	}
	return pages, nil
}

// All returns the identity selection 0..total-1.
func All(total int) []int {
	pages := make([]int, max(total, 0))
	for i := range pages {
		pages[i] = i
	}
	return pages
}

func parseTerm(term string) (int, int, bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return 0, 0, false
	}

	from, to, isRange := strings.Cut(term, "-")
	start, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return 0, 0, false
	}
	if !isRange {
		return start, start, true
	}
	end, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
