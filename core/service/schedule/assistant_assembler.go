package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"assistant_server/core/domain"
)

const localInstantLayout = "2006-01-02T15:04:05-07:00"

var reOffset = regexp.MustCompile(`^([+-])(\d{2}):(\d{2})$`)

// Assembler combines a resolved date with a time-of-day into a meeting
// window at a fixed UTC offset. The offset is a literal: daylight-saving
// transitions are not honored, which is a documented limitation of the
// serialized instants.
type Assembler struct {
	loc      *time.Location
	duration time.Duration
}

// NewAssembler creates an assembler for the given +-HH:MM offset and meeting
// duration.
func NewAssembler(offset string, duration time.Duration) (*Assembler, error) {
	secs, err := parseOffset(offset)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		duration = 2 * time.Hour
	}
	return &Assembler{
		loc:      time.FixedZone(offset, secs),
		duration: duration,
	}, nil
}

func parseOffset(offset string) (int, error) {
	m := reOffset.FindStringSubmatch(offset)
	if m == nil {
		return 0, fmt.Errorf("invalid timezone offset %q, want +-HH:MM", offset)
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("invalid timezone offset %q, want +-HH:MM", offset)
	}
	secs := hours*3600 + minutes*60
	if m[1] == "-" {
		secs = -secs
	}
	return secs, nil
}

// Duration returns the fixed meeting duration.
func (a *Assembler) Duration() time.Duration {
	return a.duration
}

// Assemble produces the meeting window: the start instant at second
// precision in the fixed-offset zone, and the end instant one meeting
// duration later.
func (a *Assembler) Assemble(date time.Time, tod domain.TimeOfDay) domain.MeetingWindow {
	start := time.Date(date.Year(), date.Month(), date.Day(), tod.Hour24(), tod.Minute, 0, 0, a.loc)
	return domain.MeetingWindow{
		Start: start,
		End:   start.Add(a.duration),
	}
}

// FormatInstant serializes an instant as YYYY-MM-DDTHH:MM:SS+-HH:MM in the
// assembler's fixed-offset zone.
func (a *Assembler) FormatInstant(t time.Time) string {
	return t.In(a.loc).Format(localInstantLayout)
}
