package planner

type Status int

const (
	Placed Status = iota
	Unplaceable
	Pinned
	Completed
)

var statusNames = map[Status]string{
	Placed:      "placed",
	Unplaceable: "unplaceable",
	Pinned:      "pinned",
	Completed:   "completed",
}

func (status Status) String() string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "unknown"
}

func (status Status) MarshalText() ([]byte, error) {
	return []byte(status.String()), nil
}

const (
	ReasonNoSessions = "no permitted sessions"
	ReasonNoTerm     = "no term satisfies window and unit cap"
	ReasonDisplaced  = "displaced by pinned courses"
)

// Outcome records how a course was resolved during a planning run
type Outcome struct {
	Course string `json:"course"`
	Status Status `json:"status"`
	Term   string `json:"term,omitempty"`   // Empty unless the course sits in the schedule
	Reason string `json:"reason,omitempty"` // Only set for unplaceable courses

	// Open ordinal interval the course had to fall in when it was considered
	Earliest int `json:"-"`
	Latest   int `json:"-"`
}

func (outcome Outcome) Scheduled() bool {
	return outcome.Term != ""
}
