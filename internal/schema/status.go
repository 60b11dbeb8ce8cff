package schema

import "fmt"

//go:generate go tool stringer -type=Status -linecomment -output=status_string.go

// Status is the outcome of classification and resolution for one column.
type Status int

const (
	StatusUnmapped Status = iota // unmapped
	StatusMapped                 // mapped
	StatusRejected               // rejected
)

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusUnmapped, StatusMapped, StatusRejected} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}

	return fmt.Errorf("unknown status %q", text)
}
