// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package throttle

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bureau-foundation/widgets/lib/clock"
)

// EnvMinReloadSecs overrides the configured minimum reload interval,
// in whole seconds.
const EnvMinReloadSecs = "WIDGETS_MIN_RELOAD_SECS"

// ReleaseInterval is the minimum reload interval outside development.
const ReleaseInterval = 15 * time.Minute

// Outcome reports what Request did.
type Outcome int

const (
	// Dispatched means the dispatch function was called.
	Dispatched Outcome = iota
	// Skipped means the request fell inside the minimum interval.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Dispatched:
		return "dispatched"
	case Skipped:
		return "skipped"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// Throttle allows one dispatch per interval. It is safe for concurrent
// use.
type Throttle struct {
	interval time.Duration
	clock    clock.Clock
	limiter  *rate.Limiter
}

// New returns a Throttle with the given minimum interval. A nil clock
// uses the real clock.
func New(interval time.Duration, c clock.Clock) *Throttle {
	if c == nil {
		c = clock.Real()
	}
	if interval < 0 {
		interval = 0
	}
	throttle := &Throttle{interval: interval, clock: c}
	if interval > 0 {
		throttle.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return throttle
}

// Interval returns the minimum interval between dispatches.
func (t *Throttle) Interval() time.Duration { return t.interval }

// Request calls dispatch unless a previous dispatch happened less than
// the interval ago. A dispatch that returns an error still counts
// against the interval; the caller sees the error with Dispatched.
func (t *Throttle) Request(ctx context.Context, dispatch func(context.Context) error) (Outcome, error) {
	if t.limiter == nil {
		return Dispatched, dispatch(ctx)
	}

	if !t.limiter.AllowN(t.clock.Now(), 1) {
		return Skipped, nil
	}
	return Dispatched, dispatch(ctx)
}

// IntervalFromEnv returns the interval from WIDGETS_MIN_RELOAD_SECS,
// or fallback when the variable is unset. Values that are not
// non-negative integers are logged and ignored.
func IntervalFromEnv(fallback time.Duration, logger *slog.Logger) time.Duration {
	raw, ok := os.LookupEnv(EnvMinReloadSecs)
	if !ok || raw == "" {
		return fallback
	}
	seconds, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		if logger != nil {
			logger.Warn("ignoring invalid reload interval override",
				"variable", EnvMinReloadSecs,
				"value", raw,
				"error", err,
			)
		}
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// DefaultInterval returns the minimum interval for a build: zero for
// debug builds, ReleaseInterval otherwise.
func DefaultInterval(debug bool) time.Duration {
	if debug {
		return 0
	}
	return ReleaseInterval
}
