package enums

import "fmt"

// RecordKind states whether a ledger record moved funds out or in.
type RecordKind string

const (
	RecordKindSend    RecordKind = "send"
	RecordKindReceive RecordKind = "receive"
)

var validRecordKinds = []RecordKind{
	RecordKindSend,
	RecordKindReceive,
}

// String implements fmt.Stringer.
func (k RecordKind) String() string {
	return string(k)
}

// IsValid reports whether the value is known.
func (k RecordKind) IsValid() bool {
	for _, candidate := range validRecordKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseRecordKind converts raw input into a RecordKind.
func ParseRecordKind(value string) (RecordKind, error) {
	for _, candidate := range validRecordKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid record kind %q", value)
}
