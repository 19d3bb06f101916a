package eventservice

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// scheduleParser understands English phrases like "next friday at 6pm".
var scheduleParser = newScheduleParser()

func newScheduleParser() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}

// resolveStartTime picks the event start: a non-empty schedule text is parsed
// as natural language and wins over the explicit start time. A non-empty
// reason is a domain failure.
func resolveStartTime(scheduleText string, startTime *time.Time, now time.Time) (time.Time, string) {
	text := strings.TrimSpace(scheduleText)
	if text != "" {
		r, err := scheduleParser.Parse(text, now)
		if err != nil || r == nil {
			return time.Time{}, fmt.Sprintf("could not understand the schedule %q", text)
		}
		return r.Time, ""
	}
	if startTime == nil || startTime.IsZero() {
		return time.Time{}, "a start time is required"
	}
	return *startTime, ""
}
