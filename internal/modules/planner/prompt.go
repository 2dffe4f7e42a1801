// README: Prompt construction for the single-shot plan flow.
package planner

import (
	"fmt"
	"strings"
)

// buildPrompt instructs the model to answer with exactly the itinerary JSON
// shape. Optional request fields only appear when the user supplied them;
// an empty constraint line tends to make the model invent one.
func buildPrompt(req Request) string {
	var constraints []string
	if req.Days != "" {
		constraints = append(constraints, fmt.Sprintf("- Trip length: %s days", req.Days))
	}
	if req.Budget != "" {
		constraints = append(constraints, fmt.Sprintf("- Budget: %s", req.Budget))
	}
	if req.Interests != "" {
		constraints = append(constraints, fmt.Sprintf("- Interests: %s", req.Interests))
	}
	if req.Group != "" {
		constraints = append(constraints, fmt.Sprintf("- Travel group: %s", req.Group))
	}
	constraintBlock := "none"
	if len(constraints) > 0 {
		constraintBlock = strings.Join(constraints, "\n")
	}

	return fmt.Sprintf(`You are a travel planner. Create a day-by-day itinerary for a trip to %s.

Constraints:
%s

Respond with ONLY a JSON object, no commentary, in exactly this shape:
{
  "summary": "one-paragraph overview of the trip",
  "itinerary": [
    {
      "day": 1,
      "date": "weekday or relative label",
      "summary": "short description of the day",
      "activities": ["activity 1", "activity 2"]
    }
  ],
  "images": []
}

Every day of the trip must appear in the "itinerary" array. Keep activity
descriptions to one sentence each.`, req.Destination, constraintBlock)
}
