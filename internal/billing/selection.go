package billing

import (
	"sort"
	"strconv"
	"strings"
)

// SelectAll is the selection token that picks every candidate.
const SelectAll = "all"

// ParseSelection parses a comma-separated selection of 1-based indices
// and inclusive ranges ("1,3,5-8") against n candidates, returning the
// distinct selected indices in ascending order.
//
// The literal "all" selects every candidate. Duplicate indices collapse.
// A range whose upper bound exceeds n is clamped to n, and a range with
// b < a contributes nothing. A single index outside [1, n] is ignored.
// Empty input and non-numeric tokens return a *SelectionError.
func ParseSelection(input string, n int) ([]int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, &SelectionError{Input: input, Reason: "empty selection"}
	}

	if strings.EqualFold(trimmed, SelectAll) {
		all := make([]int, n)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	selected := make(map[int]struct{})
	for _, token := range strings.Split(trimmed, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, &SelectionError{Input: input, Token: token, Reason: "empty token"}
		}

		if a, b, ok := strings.Cut(token, "-"); ok {
			start, err := strconv.Atoi(strings.TrimSpace(a))
			if err != nil {
				return nil, &SelectionError{Input: input, Token: token, Reason: "range start is not a number"}
			}
			end, err := strconv.Atoi(strings.TrimSpace(b))
			if err != nil {
				return nil, &SelectionError{Input: input, Token: token, Reason: "range end is not a number"}
			}
			if end > n {
				end = n
			}
			for i := start; i <= end; i++ {
				if i >= 1 {
					selected[i] = struct{}{}
				}
			}
			continue
		}

		num, err := strconv.Atoi(token)
		if err != nil {
			return nil, &SelectionError{Input: input, Token: token, Reason: "not a number"}
		}
		if num >= 1 && num <= n {
			selected[num] = struct{}{}
		}
	}

	indices := make([]int, 0, len(selected))
	for i := range selected {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices, nil
}
