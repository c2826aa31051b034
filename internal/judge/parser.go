package judge

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRating interprets a completion as a 0-100 rating. Non-numeric content
// and out-of-range values are rejected, never clamped; an out-of-range reply
// means the prompt or the model misbehaved.
func ParseRating(completion string) (int, error) {
	text := strings.TrimSpace(completion)
	rating, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("completion is not an integer: %q", text)
	}
	if rating < 0 || rating > 100 {
		return 0, fmt.Errorf("rating %d outside [0, 100]", rating)
	}
	return rating, nil
}
