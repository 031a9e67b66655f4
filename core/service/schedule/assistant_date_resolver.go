// Package schedule resolves natural-language date and time cues from email
// drafts into concrete meeting instants.
package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// WeekdayPolicy controls how a bare weekday mention ("friday" with no
// qualifier) resolves when the reference date already falls on that weekday.
// "this friday" always allows a zero offset and "next friday" always skips
// forward, regardless of policy.
type WeekdayPolicy int

const (
	// WeekdaySameWeek lets a bare weekday resolve to the reference date
	// itself when the weekdays match.
	WeekdaySameWeek WeekdayPolicy = iota
	// WeekdayNextWeek always moves a bare weekday at least one day forward.
	WeekdayNextWeek
)

// ParseWeekdayPolicy maps a config string to a policy, defaulting to
// same-week resolution.
func ParseWeekdayPolicy(s string) WeekdayPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "next-week") {
		return WeekdayNextWeek
	}
	return WeekdaySameWeek
}

func (p WeekdayPolicy) String() string {
	if p == WeekdayNextWeek {
		return "next-week"
	}
	return "same-week"
}

// weekdayNames uses Monday-first indexing throughout this package.
var weekdayNames = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

const saturdayIndex = 5

type weekdayRule struct {
	next *regexp.Regexp
	this *regexp.Regexp
	bare *regexp.Regexp
}

var weekdayRules = buildWeekdayRules()

func buildWeekdayRules() []weekdayRule {
	rules := make([]weekdayRule, len(weekdayNames))
	for i, name := range weekdayNames {
		rules[i] = weekdayRule{
			next: regexp.MustCompile(fmt.Sprintf(`\bnext\s+%s\b`, name)),
			this: regexp.MustCompile(fmt.Sprintf(`\bthis\s+%s\b`, name)),
			bare: regexp.MustCompile(fmt.Sprintf(`\b%s\b`, name)),
		}
	}
	return rules
}

// DateResolver maps free-form text and a reference instant to a calendar
// date. Resolution is pure: the same (text, reference) pair always yields
// the same date.
type DateResolver struct {
	Policy WeekdayPolicy
}

// Resolve applies the cue rules in priority order and returns the resolved
// date at midnight in the reference's location. First match wins:
//
//  1. "tomorrow"   -> reference + 1 day
//  2. "next week"  -> reference + 7 days
//  3. "weekend"    -> next Saturday, zero offset allowed
//  4. per-weekday scan Monday..Sunday: "next <w>", "this <w>", bare "<w>"
//  5. default      -> the reference date itself
func (r DateResolver) Resolve(text string, ref time.Time) time.Time {
	t := strings.ToLower(text)
	today := truncateToDate(ref)

	if strings.Contains(t, "tomorrow") {
		return today.AddDate(0, 0, 1)
	}
	if strings.Contains(t, "next week") {
		return today.AddDate(0, 0, 7)
	}
	if strings.Contains(t, "weekend") {
		return addToWeekday(today, saturdayIndex, false)
	}

	for i, rule := range weekdayRules {
		switch {
		case rule.next.MatchString(t):
			return addToWeekday(today, i, true)
		case rule.this.MatchString(t):
			return addToWeekday(today, i, false)
		case rule.bare.MatchString(t):
			return addToWeekday(today, i, r.Policy == WeekdayNextWeek)
		}
	}

	return today
}

// truncateToDate drops the time-of-day component.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayIndex converts Go's Sunday-first weekday to Monday-first indexing.
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// addToWeekday advances date to the next occurrence of the target weekday.
// With skipToday set, a same-weekday reference moves a full week forward
// instead of resolving to the reference date.
func addToWeekday(date time.Time, target int, skipToday bool) time.Time {
	days := (target - mondayIndex(date) + 7) % 7
	if days == 0 && skipToday {
		days = 7
	}
	return date.AddDate(0, 0, days)
}
