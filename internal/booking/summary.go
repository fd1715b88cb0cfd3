package booking

import (
	"fmt"
	"strings"

	"github.com/lfarias/sports-booking-gateway/internal/dateutil"
)

// Summary is the human-readable projection of the pending reservation,
// shown as UI feedback and used as a pre-submission sanity check.
type Summary struct {
	Text      string   `json:"text"`
	SlotCount int      `json:"slotCount"`
	Weekdays  []string `json:"weekdays,omitempty"`
}

// BuildSummary derives the summary from the schedule and the number of
// selected slots.  It returns nil when there is nothing to summarize (no
// start date or no slots) and degrades gracefully on partial state: a
// missing piece is omitted, never an error.
//
// Formats:
//
//	single date:          "21/06/2025 • 1 horario"
//	range:                "21/06/2025 - 25/06/2025 • 3 horarios"
//	range with weekdays:  "21/06/2025 - 25/06/2025 • 📆 Lunes, Miércoles • 3 horarios"
func BuildSummary(sched Schedule, slotCount int) *Summary {
	if sched == nil || slotCount <= 0 {
		return nil
	}
	var parts []string
	var weekdayNames []string

	switch s := sched.(type) {
	case SingleDate:
		if s.Date == "" {
			return nil
		}
		parts = append(parts, dateutil.FormatForDisplay(s.Date))
	case DateRange:
		if s.Start == "" {
			return nil
		}
		if s.End == "" {
			parts = append(parts, dateutil.FormatForDisplay(s.Start))
		} else {
			parts = append(parts, dateutil.FormatForDisplay(s.Start)+" - "+dateutil.FormatForDisplay(s.End))
		}
		for _, d := range s.Weekdays {
			if name := dateutil.WeekdayName(d); name != "" {
				weekdayNames = append(weekdayNames, name)
			}
		}
		if len(weekdayNames) > 0 {
			parts = append(parts, "📆 "+strings.Join(weekdayNames, ", "))
		}
	default:
		return nil
	}

	parts = append(parts, fmt.Sprintf("%d %s", slotCount, pluralize(slotCount, "horario", "horarios")))
	return &Summary{
		Text:      strings.Join(parts, " • "),
		SlotCount: slotCount,
		Weekdays:  weekdayNames,
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
