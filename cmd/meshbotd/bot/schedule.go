package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// ParseSchedule converts a check interval into a fixed period. It accepts a Go
// duration ("5m") or a standard 5-field cron expression ("*/5 * * * *"). Cron
// expressions are reduced to the distance between their next two activations,
// so irregular schedules run at their first gap.
func ParseSchedule(expr string) (time.Duration, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, fmt.Errorf("empty schedule")
	}
	if d, err := time.ParseDuration(expr); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("schedule %q must be positive", expr)
		}
		return d, nil
	}

	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return 0, fmt.Errorf("parsing schedule %q: %s", expr, err)
	}
	first := sched.Next(time.Now())
	if first.IsZero() {
		return 0, fmt.Errorf("schedule %q never activates", expr)
	}
	second := sched.Next(first)
	if second.IsZero() {
		return 0, fmt.Errorf("schedule %q activates only once", expr)
	}
	return second.Sub(first), nil
}
