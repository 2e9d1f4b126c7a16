package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseDateRange reads the from/to query parameters as calendar dates and
// returns a half-open [from, to) range in the server's local time. The `to`
// day is included in the range. Both default to today.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	from := today
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from: %w", err)
		}
		from = parsed
	}

	toDay := today
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to: %w", err)
		}
		toDay = parsed
	}

	to := toDay.AddDate(0, 0, 1)
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to precedes from")
	}
	return from, to, nil
}
