// Package clock provides the single source of "now" for the CLI, so
// that output can be made reproducible for testing.
package clock

import (
	"os"
	"time"
)

// FakeNowEnv is the environment variable that pins the current time to
// a fixed RFC3339 timestamp, used by the keytab writer's default
// timestamp (spec.md §6 "Environment").
const FakeNowEnv = "KEYTABCTL_FAKE_NOW"

// Now returns the pinned time from KEYTABCTL_FAKE_NOW when it is set to
// a valid RFC3339 timestamp, or the wall clock otherwise.
func Now() time.Time {
	if v := os.Getenv(FakeNowEnv); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.UTC()
		}
	}
	return time.Now()
}
