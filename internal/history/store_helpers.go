package history

import (
	"context"
	"errors"
	"strings"
	"time"
)

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// busy reports SQLite lock contention, by result code when the driver exposes
// one and by message otherwise.
func busy(err error) bool {
	var coded interface{ Code() int }
	switch {
	case err == nil:
		return false
	case errors.As(err, &coded):
		return coded.Code()&0xff == sqliteBusyCode
	}
	return strings.Contains(err.Error(), "database is locked")
}

// retryOnBusy runs op until it succeeds, fails for a reason other than lock
// contention, or runs out of attempts. The wait doubles up to a cap.
func retryOnBusy(ctx context.Context, op func() error) error {
	wait := busyRetryInitialBackoff
	err := op()
	for attempt := 1; attempt < busyRetryAttempts && busy(err); attempt++ {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait = min(wait*2, busyRetryMaxBackoff)
		err = op()
	}
	return err
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	t, _ := time.Parse(timeLayout, raw)
	return t
}
