package schedule

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// 2025-01-13 is a Monday; the rest of that week follows.
var (
	monday    = date(2025, time.January, 13)
	wednesday = date(2025, time.January, 15)
	friday    = date(2025, time.January, 17)
	saturday  = date(2025, time.January, 18)
	sunday    = date(2025, time.January, 19)
)

func TestResolve_PriorityKeywords(t *testing.T) {
	r := DateResolver{}

	tests := []struct {
		name string
		text string
		ref  time.Time
		want time.Time
	}{
		{"tomorrow", "see you tomorrow", wednesday, date(2025, time.January, 16)},
		{"tomorrow from saturday", "tomorrow works", saturday, sunday},
		{"next week", "let's sync next week", wednesday, date(2025, time.January, 22)},
		{"weekend from wednesday", "free this weekend?", wednesday, saturday},
		{"weekend on saturday stays", "busy weekend", saturday, saturday},
		{"weekend from sunday wraps", "the weekend after", sunday, date(2025, time.January, 25)},
		{"tomorrow beats weekday", "tomorrow, not friday", wednesday, date(2025, time.January, 16)},
		{"no cue defaults to today", "lunch sometime?", wednesday, wednesday},
		{"empty text defaults to today", "", friday, friday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.text, tt.ref)
			if !got.Equal(tt.want) {
				t.Errorf("Resolve(%q, %s) = %s, want %s", tt.text, tt.ref.Format("2006-01-02"), got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestResolve_WeekdayQualifiers(t *testing.T) {
	r := DateResolver{}

	tests := []struct {
		name string
		text string
		ref  time.Time
		want time.Time
	}{
		{"next friday from wednesday", "meet next friday", wednesday, friday},
		{"next wednesday skips a week", "next wednesday works", wednesday, date(2025, time.January, 22)},
		{"this friday from wednesday", "this friday evening", wednesday, friday},
		{"this wednesday is today", "this wednesday", wednesday, wednesday},
		{"bare friday same week", "friday works for me", wednesday, friday},
		{"bare wednesday is today under same-week", "wednesday?", wednesday, wednesday},
		{"bare monday wraps forward", "monday then", wednesday, date(2025, time.January, 20)},
		{"first weekday in scan order wins", "monday or next friday", wednesday, date(2025, time.January, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.text, tt.ref)
			if !got.Equal(tt.want) {
				t.Errorf("Resolve(%q) = %s, want %s", tt.text, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestResolve_NextWeekPolicy(t *testing.T) {
	r := DateResolver{Policy: WeekdayNextWeek}

	// A bare weekday matching the reference date must skip a full week.
	got := r.Resolve("wednesday?", wednesday)
	if want := date(2025, time.January, 22); !got.Equal(want) {
		t.Errorf("bare wednesday under next-week policy = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}

	// "this <weekday>" still allows a zero offset regardless of policy.
	got = r.Resolve("this wednesday", wednesday)
	if !got.Equal(wednesday) {
		t.Errorf("this wednesday under next-week policy = %s, want %s", got.Format("2006-01-02"), wednesday.Format("2006-01-02"))
	}
}

// "this W" resolves within [ref, ref+6] with the right weekday; "next W"
// resolves strictly after ref. Checked across a full week of references.
func TestResolve_WeekdayProperties(t *testing.T) {
	r := DateResolver{}

	for offset := 0; offset < 7; offset++ {
		ref := monday.AddDate(0, 0, offset)
		for i, name := range weekdayNames {
			thisDate := r.Resolve("this "+name, ref)
			if mondayIndex(thisDate) != i {
				t.Errorf("this %s from %s: wrong weekday %s", name, ref.Format("2006-01-02"), thisDate.Weekday())
			}
			if diff := int(thisDate.Sub(ref).Hours() / 24); diff < 0 || diff > 6 {
				t.Errorf("this %s from %s: offset %d days outside [0,6]", name, ref.Format("2006-01-02"), diff)
			}

			nextDate := r.Resolve("next "+name, ref)
			if mondayIndex(nextDate) != i {
				t.Errorf("next %s from %s: wrong weekday %s", name, ref.Format("2006-01-02"), nextDate.Weekday())
			}
			if diff := int(nextDate.Sub(ref).Hours() / 24); diff < 1 || diff > 7 {
				t.Errorf("next %s from %s: offset %d days outside [1,7]", name, ref.Format("2006-01-02"), diff)
			}
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := DateResolver{}
	first := r.Resolve("next friday", wednesday)
	second := r.Resolve("next friday", wednesday)
	if !first.Equal(second) {
		t.Errorf("resolution not idempotent: %s vs %s", first, second)
	}
}

func TestResolve_DropsTimeOfDay(t *testing.T) {
	r := DateResolver{}
	ref := time.Date(2025, time.January, 15, 17, 42, 9, 123, time.UTC)
	got := r.Resolve("tomorrow", ref)
	want := date(2025, time.January, 16)
	if !got.Equal(want) {
		t.Errorf("Resolve with time-of-day reference = %v, want %v", got, want)
	}
}

func TestParseWeekdayPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want WeekdayPolicy
	}{
		{"same-week", WeekdaySameWeek},
		{"next-week", WeekdayNextWeek},
		{"NEXT-WEEK", WeekdayNextWeek},
		{"", WeekdaySameWeek},
		{"bogus", WeekdaySameWeek},
	}
	for _, tt := range tests {
		if got := ParseWeekdayPolicy(tt.in); got != tt.want {
			t.Errorf("ParseWeekdayPolicy(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
