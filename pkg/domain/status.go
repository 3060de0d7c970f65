package domain

// Status classifies an automaton by mailbox occupancy. Outside an in-progress
// pass, Inactive always implies an empty mailbox; New is the transient
// "about to be classified" status the next pass resolves.
type Status uint8

const (
	// StatusNew marks an automaton awaiting classification: freshly spawned,
	// just drained, or mailed while it was Inactive.
	StatusNew Status = iota

	// StatusActive marks an automaton that had pending mail when the current
	// pass classified it.
	StatusActive

	// StatusInactive marks an automaton whose mailbox was empty at
	// classification time.
	StatusInactive
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusActive:
		return "active"
	case StatusInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// Stats is a census of live automatons per status collection.
type Stats struct {
	New      int `json:"new"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// Total returns the number of live automatons across all collections.
func (s Stats) Total() int {
	return s.New + s.Active + s.Inactive
}
