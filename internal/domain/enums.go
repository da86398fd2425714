package domain

// TaskStatus represents the server-side lifecycle of an import task.
// Transitions move forward only: created/parsing -> parsed|failed,
// parsed -> confirmed. confirmed and failed are terminal.
type TaskStatus string

const (
	TaskStatusCreated   TaskStatus = "created"
	TaskStatusParsing   TaskStatus = "parsing"
	TaskStatusParsed    TaskStatus = "parsed"
	TaskStatusConfirmed TaskStatus = "confirmed"
	TaskStatusFailed    TaskStatus = "failed"
)

// IsTerminal reports whether no further transitions are possible.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusConfirmed || s == TaskStatusFailed
}

// taskStatusRank orders statuses for the forward-only check.
var taskStatusRank = map[TaskStatus]int{
	TaskStatusCreated:   0,
	TaskStatusParsing:   1,
	TaskStatusParsed:    2,
	TaskStatusConfirmed: 3,
	TaskStatusFailed:    3,
}

// CanTransition reports whether moving from s to next respects the
// monotonic forward-only invariant.
func (s TaskStatus) CanTransition(next TaskStatus) bool {
	from, ok := taskStatusRank[s]
	if !ok {
		return false
	}
	to, ok := taskStatusRank[next]
	if !ok {
		return false
	}
	return to >= from
}

// SkuCategory is the closed set of catalog categories. Anything outside
// the seven known values normalizes with generic fallback rules.
type SkuCategory string

const (
	CategoryHotel      SkuCategory = "hotel"
	CategoryCar        SkuCategory = "car"
	CategoryTicket     SkuCategory = "ticket"
	CategoryGuide      SkuCategory = "guide"
	CategoryRestaurant SkuCategory = "restaurant"
	CategoryItinerary  SkuCategory = "itinerary"
	CategoryActivity   SkuCategory = "activity"
)

// Categories lists the known categories in declaration order. The order is
// load-bearing: ties in category auto-detection break toward the earlier
// entry.
var Categories = []SkuCategory{
	CategoryHotel,
	CategoryCar,
	CategoryTicket,
	CategoryGuide,
	CategoryRestaurant,
	CategoryItinerary,
	CategoryActivity,
}

// Known reports whether c is one of the seven catalog categories.
func (c SkuCategory) Known() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// SubmissionKind distinguishes text submissions from file submissions.
type SubmissionKind string

const (
	SubmissionText SubmissionKind = "text"
	SubmissionFile SubmissionKind = "file"
)
