package provider

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Prasann2003/smart-parking-spot-finder/internal/gateway"
)

// Tracker polls the application-status endpoint and interprets the result.
// It never self-transitions; state changes only appear on the next poll.
type Tracker struct {
	gw  *gateway.Client
	log *zap.Logger
}

func NewTracker(gw *gateway.Client, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{gw: gw, log: log}
}

// Fetch loads the current application state for the given account. A failed
// fetch yields an unknown result instead of an error: the tracker is a
// non-critical enhancement and fails open toward the call-to-action.
func (t *Tracker) Fetch(ctx context.Context, email string) StatusResult {
	q := url.Values{}
	q.Set("email", email)

	var raw json.RawMessage
	if err := t.gw.Get(ctx, "/provider/application-status", q, &raw); err != nil {
		t.log.Debug("application status fetch failed", zap.Error(err))
		return StatusResult{}
	}

	state, err := parseStatus(raw)
	if err != nil {
		t.log.Debug("application status unparseable", zap.Error(err))
		return StatusResult{}
	}
	return StatusResult{Known: true, State: state}
}

// Watch re-polls the status on a cron schedule and hands each result to fn,
// until ctx is done. The SPA refreshes per dashboard load; the CLI's watch
// mode re-polls on a timer instead.
func (t *Tracker) Watch(ctx context.Context, email, spec string, fn func(StatusResult)) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		fn(t.Fetch(ctx, email))
	})
	if err != nil {
		return err
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}
