package enums

// PaylinkLifecycle is the wallet's own canonical vocabulary for hosted
// checkout pages, distinct from the raw status strings the upstream reports.
type PaylinkLifecycle string

const (
	PaylinkLifecycleCreated PaylinkLifecycle = "created"
	PaylinkLifecycleActive  PaylinkLifecycle = "active"
	PaylinkLifecyclePaid    PaylinkLifecycle = "paid"
	PaylinkLifecycleExpired PaylinkLifecycle = "expired"
	PaylinkLifecycleDead    PaylinkLifecycle = "dead"
)

var validPaylinkLifecycles = []PaylinkLifecycle{
	PaylinkLifecycleCreated,
	PaylinkLifecycleActive,
	PaylinkLifecyclePaid,
	PaylinkLifecycleExpired,
	PaylinkLifecycleDead,
}

// String implements fmt.Stringer.
func (l PaylinkLifecycle) String() string {
	return string(l)
}

// IsValid reports whether the value is known.
func (l PaylinkLifecycle) IsValid() bool {
	for _, candidate := range validPaylinkLifecycles {
		if candidate == l {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition can leave this state.
func (l PaylinkLifecycle) IsTerminal() bool {
	switch l {
	case PaylinkLifecyclePaid, PaylinkLifecycleExpired, PaylinkLifecycleDead:
		return true
	}
	return false
}

// NormalizePaylinkStatus maps a raw upstream status string onto the
// canonical lifecycle. Legacy spellings are translated; anything
// unrecognized falls back to created, which is never assumed terminal.
func NormalizePaylinkStatus(raw string) PaylinkLifecycle {
	switch raw {
	case "completed":
		return PaylinkLifecyclePaid
	case "cancelled":
		return PaylinkLifecycleDead
	}
	if lifecycle := PaylinkLifecycle(raw); lifecycle.IsValid() {
		return lifecycle
	}
	return PaylinkLifecycleCreated
}
