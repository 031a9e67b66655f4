package domain

import (
	"strings"
	"time"
)

// Meridiem is the am/pm designator of a 12-hour clock time.
type Meridiem string

const (
	AM Meridiem = "am"
	PM Meridiem = "pm"
)

// ParseMeridiem normalizes a free-form designator; anything that is not "am"
// is treated as "pm", matching the default used throughout meeting parsing.
func ParseMeridiem(s string) Meridiem {
	if strings.EqualFold(strings.TrimSpace(s), string(AM)) {
		return AM
	}
	return PM
}

// TimeOfDay is an ambiguity-free 12-hour clock time.
type TimeOfDay struct {
	Hour     int // 1-12 display form
	Minute   int // 0-59
	Meridiem Meridiem
}

// Hour24 converts the display hour to 24-hour form.
// pm maps 1-11 to +12 and keeps 12; am maps 12 to 0.
func (t TimeOfDay) Hour24() int {
	h := t.Hour
	if t.Meridiem == PM && h >= 1 && h < 12 {
		h += 12
	}
	if t.Meridiem == AM && h == 12 {
		h = 0
	}
	return h
}

// TimeFromHour24 builds a TimeOfDay from a 24-hour clock hour. It is the
// inverse of Hour24: the round trip preserves (hour, minute, meridiem).
func TimeFromHour24(hour24, minute int) TimeOfDay {
	switch {
	case hour24 == 0:
		return TimeOfDay{Hour: 12, Minute: minute, Meridiem: AM}
	case hour24 < 12:
		return TimeOfDay{Hour: hour24, Minute: minute, Meridiem: AM}
	case hour24 == 12:
		return TimeOfDay{Hour: 12, Minute: minute, Meridiem: PM}
	default:
		return TimeOfDay{Hour: hour24 - 12, Minute: minute, Meridiem: PM}
	}
}

// DefaultMeetingSummary is substituted when the oracle yields no usable title.
const DefaultMeetingSummary = "Meeting"

// DefaultMeetingTime is substituted when neither the oracle nor the draft
// text yields a usable time.
func DefaultMeetingTime() TimeOfDay {
	return TimeOfDay{Hour: 6, Minute: 0, Meridiem: PM}
}

// MeetingWindow is a start/end instant pair for a meeting, both instants
// carrying the same fixed UTC offset.
type MeetingWindow struct {
	Start time.Time
	End   time.Time
}

// ParsedMeeting is the normalized result of parsing a draft for meeting
// intent. StartTime/EndTime are serialized with a fixed offset and do not
// honor daylight-saving transitions.
type ParsedMeeting struct {
	Summary   string   `json:"summary"`
	Attendees []string `json:"attendees"`
	Date      string   `json:"date"`
	Hour      int      `json:"hour"`
	Minute    int      `json:"minute"`
	AmPm      string   `json:"ampm"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
}

// EventRequest describes a calendar event to be created at a provider.
type EventRequest struct {
	Summary     string
	Description string
	Location    string
	StartTime   string // ISO-8601 with offset
	EndTime     string // ISO-8601 with offset
	TimeZone    string
	Attendees   []string // email addresses
}

// CreatedEvent is the provider's opaque handle for a created event.
type CreatedEvent struct {
	ID       string
	Link     string
	Provider string
}
