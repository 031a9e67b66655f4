package schedule

import (
	"regexp"
	"strconv"
	"strings"

	"assistant_server/core/domain"
)

var (
	// "6pm", "6:30 am"
	reClockMeridiem = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	// "6:30" with no meridiem
	reClockPlain = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	// bare hour, optionally "o'clock"
	reBareHour = regexp.MustCompile(`\b(\d{1,2})\s*(o'?clock)?\b`)
)

// NormalizeTime infers a time-of-day from free-form text. The cascade stops
// at the first match:
//
//  1. explicit clock time with meridiem ("6pm", "6:30 am")
//  2. H:MM without meridiem — pm when H >= 8, else am
//  3. bare hour, optionally "o'clock" — pm when H >= 6, else am
//  4. keywords: noon, midnight, tonight/evening, afternoon, morning
//  5. default 6:00 pm
//
// Rules 2 and 3 are default-inference heuristics, not calendar-aware math.
func NormalizeTime(text string) domain.TimeOfDay {
	t := strings.ToLower(text)

	if m := reClockMeridiem.FindStringSubmatch(t); m != nil {
		hour := atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute = atoi(m[2])
		}
		return domain.TimeOfDay{Hour: hour, Minute: minute, Meridiem: domain.Meridiem(m[3])}
	}

	if m := reClockPlain.FindStringSubmatch(t); m != nil {
		hour := atoi(m[1])
		minute := atoi(m[2])
		meridiem := domain.AM
		if hour >= 8 {
			meridiem = domain.PM
		}
		return domain.TimeOfDay{Hour: hour, Minute: minute, Meridiem: meridiem}
	}

	if m := reBareHour.FindStringSubmatch(t); m != nil {
		hour := atoi(m[1])
		meridiem := domain.AM
		if hour >= 6 {
			meridiem = domain.PM
		}
		return domain.TimeOfDay{Hour: hour, Minute: 0, Meridiem: meridiem}
	}

	switch {
	case strings.Contains(t, "noon"):
		return domain.TimeOfDay{Hour: 12, Minute: 0, Meridiem: domain.PM}
	case strings.Contains(t, "midnight"):
		return domain.TimeOfDay{Hour: 12, Minute: 0, Meridiem: domain.AM}
	case strings.Contains(t, "tonight"), strings.Contains(t, "evening"):
		return domain.TimeOfDay{Hour: 7, Minute: 0, Meridiem: domain.PM}
	case strings.Contains(t, "afternoon"):
		return domain.TimeOfDay{Hour: 3, Minute: 0, Meridiem: domain.PM}
	case strings.Contains(t, "morning"):
		return domain.TimeOfDay{Hour: 9, Minute: 0, Meridiem: domain.AM}
	}

	return domain.DefaultMeetingTime()
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
