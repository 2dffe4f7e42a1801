// README: History entry model; one record per successful itinerary exchange.
package history

import (
	"encoding/json"
	"time"
)

// ModeChat marks entries produced by the conversation flow.
const ModeChat = "chat"

// RequestRecord is the normalized input that produced an entry. Plan
// entries carry the field set of the plan request; chat entries carry the
// chat marker, the optional group context, and the last user message as a
// retrieval hint. The full conversation is never stored.
type RequestRecord struct {
	Destination string `json:"destination,omitempty"`
	Days        string `json:"days,omitempty"`
	Budget      string `json:"budget,omitempty"`
	Interests   string `json:"interests,omitempty"`
	Group       string `json:"group,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Entry is immutable once written; the only mutation the store supports is
// deletion by the owning identity.
type Entry struct {
	ID        string          `json:"id"`
	UserHash  string          `json:"userHash"`
	Timestamp time.Time       `json:"timestamp"`
	Request   RequestRecord   `json:"request"`
	Response  json.RawMessage `json:"response"`
}
