// README: Plan request and structured itinerary payload.
package planner

import "errors"

var (
	ErrInvalidFields      = errors.New("request contains unexpected fields")
	ErrMissingDestination = errors.New("destination is required")
)

// Request is the normalized, sanitized plan input. Only these five fields
// are accepted on the wire; anything else rejects the whole request.
type Request struct {
	Destination string
	Days        string
	Budget      string
	Interests   string
	Group       string
}

// Day is one itinerary day as emitted by the model.
type Day struct {
	Day        int      `json:"day"`
	Date       string   `json:"date"`
	Summary    string   `json:"summary"`
	Activities []string `json:"activities"`
}

// Itinerary is the structured payload returned to the client. Images is
// guaranteed non-empty on every successful plan.
type Itinerary struct {
	Summary string   `json:"summary"`
	Days    []Day    `json:"itinerary"`
	Images  []string `json:"images"`
}
