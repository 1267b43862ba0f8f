package verify

import (
	"errors"
	"regexp"
	"strconv"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// ExtractScore parses a model reply into a reputation score by taking
// the first run of decimal digits found anywhere in the reply and
// clamping it into [0, 100]. Models rarely answer with a bare number
// even when told to, so anything around the digits is ignored.
func ExtractScore(reply string) (int, error) {
	m := digitRun.FindString(reply)
	if m == "" {
		return 0, errors.New("no score found in reply")
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 100, nil
		}
		return 0, err
	}
	if n > 100 {
		n = 100
	}
	return n, nil
}
