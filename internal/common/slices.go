package common

import "strings"

// FirstNonBlank returns the first value that is not empty after trimming,
// already trimmed.
func FirstNonBlank(values ...string) (string, bool) {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t, true
		}
	}

	return "", false
}
