package meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assistant_server/core/domain"
	"assistant_server/core/port/out"
	"assistant_server/core/service/schedule"
	"assistant_server/pkg/logger"
	"assistant_server/pkg/resilience"
)

const parsePromptTemplate = `Extract meeting details from the following email draft.
Return only a JSON object with fields:
- summary: short title of the meeting
- hour: 1-12, omit if no time is mentioned
- minute: 0-59, omit if no time is mentioned
- ampm: "am" or "pm"
- attendees: list of email addresses mentioned in the draft

Email draft:
%s`

// Service turns a free-form email draft into a concrete meeting proposal.
// The language model supplies a structured hint; date and time parsing of
// the draft text fills in whatever the hint omits.
type Service struct {
	oracle    out.OraclePort
	resolver  *schedule.DateResolver
	assembler *schedule.Assembler
	breaker   *resilience.Breaker
	timeout   time.Duration
	log       *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewService(oracle out.OraclePort, resolver *schedule.DateResolver, assembler *schedule.Assembler, breaker *resilience.Breaker, timeout time.Duration) *Service {
	return &Service{
		oracle:    oracle,
		resolver:  resolver,
		assembler: assembler,
		breaker:   breaker,
		timeout:   timeout,
		log:       logger.Default().WithField("component", "meeting-service"),
		now:       time.Now,
	}
}

// ParseMeeting resolves the draft into a dated, timed meeting. Model
// failures are not fatal: the text cascade and defaults always produce a
// usable result.
func (s *Service) ParseMeeting(ctx context.Context, draft string) (*domain.ParsedMeeting, error) {
	hint := s.askOracle(ctx, draft)

	date := s.resolver.Resolve(draft, s.now())
	tod := s.timeOfDay(hint, draft)

	summary := domain.DefaultMeetingSummary
	var attendees []string
	if hint != nil {
		if t := strings.TrimSpace(hint.Summary); t != "" {
			summary = t
		}
		for _, a := range hint.Attendees {
			if strings.Contains(a, "@") {
				attendees = append(attendees, strings.TrimSpace(a))
			}
		}
	}
	if attendees == nil {
		attendees = []string{}
	}

	window := s.assembler.Assemble(date, tod)

	return &domain.ParsedMeeting{
		Summary:   summary,
		Attendees: attendees,
		Date:      date.Format("2006-01-02"),
		Hour:      tod.Hour,
		Minute:    tod.Minute,
		AmPm:      string(tod.Meridiem),
		StartTime: s.assembler.FormatInstant(window.Start),
		EndTime:   s.assembler.FormatInstant(window.End),
	}, nil
}

// askOracle queries the model under the circuit breaker. Any failure is
// logged and reported as a missing hint.
func (s *Service) askOracle(ctx context.Context, draft string) *meetingHint {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(parsePromptTemplate, draft)
	raw, err := resilience.Execute(s.breaker, func() (string, error) {
		return s.oracle.Complete(ctx, prompt)
	})
	if err != nil {
		s.log.WithError(err).Warn("meeting extraction model call failed")
		return nil
	}

	hint, err := decodeHint(raw)
	if err != nil {
		s.log.WithError(err).WithField("output_len", len(raw)).Warn("meeting extraction output unusable")
		return nil
	}
	return hint
}

// timeOfDay picks the meeting time: an explicit hour in the hint wins,
// otherwise the draft text is scanned.
func (s *Service) timeOfDay(hint *meetingHint, draft string) domain.TimeOfDay {
	if hint == nil || hint.Hour == nil {
		return schedule.NormalizeTime(draft)
	}

	minute := 0
	if hint.Minute != nil && *hint.Minute >= 0 && *hint.Minute <= 59 {
		minute = *hint.Minute
	}

	h := *hint.Hour
	if h < 1 || h > 12 {
		// Some models answer on a 24-hour clock regardless of instructions.
		if h >= 0 && h <= 23 {
			return domain.TimeFromHour24(h, minute)
		}
		return schedule.NormalizeTime(draft)
	}
	return domain.TimeOfDay{Hour: h, Minute: minute, Meridiem: domain.ParseMeridiem(hint.AmPm)}
}
