package coord

// Availability is the resolved state of a slot's preferred implementation.
// A slot starts Unknown and moves exactly once per mount cycle to Available
// or Unavailable; re-registration resets it.
type Availability string

const (
	Unknown     Availability = "unknown"
	Available   Availability = "available"
	Unavailable Availability = "unavailable"
)

func availabilityOf(available bool) Availability {
	if available {
		return Available
	}
	return Unavailable
}
