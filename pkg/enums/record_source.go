package enums

import "fmt"

// RecordSource tags which payment rail produced a ledger record. Plain
// Lightning sends and receives carry no source.
type RecordSource string

const (
	RecordSourcePaylink RecordSource = "paylink"
	RecordSourceOnchain RecordSource = "onchain"
)

var validRecordSources = []RecordSource{
	RecordSourcePaylink,
	RecordSourceOnchain,
}

// String implements fmt.Stringer.
func (s RecordSource) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s RecordSource) IsValid() bool {
	for _, candidate := range validRecordSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRecordSource converts raw input into a RecordSource.
func ParseRecordSource(value string) (RecordSource, error) {
	for _, candidate := range validRecordSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid record source %q", value)
}
