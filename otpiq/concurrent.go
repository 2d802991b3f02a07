package otpiq

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultTrackConcurrency bounds the number of in-flight tracking requests
const DefaultTrackConcurrency = 5

// TrackOutcome is the result of tracking one message in TrackMessages
type TrackOutcome struct {
	SMSID  string
	Result *TrackingResult
	Err    error
}

// TrackError contains information about a failed tracking request
type TrackError struct {
	SMSID string
	Err   error
}

// Error implements the error interface
func (e TrackError) Error() string {
	return fmt.Sprintf("failed to track message %s: %v", e.SMSID, e.Err)
}

// Unwrap returns the underlying error.
func (e TrackError) Unwrap() error {
	return e.Err
}

// TrackMessages tracks several messages concurrently. Each id is an independent
// request; a failure for one id does not cancel the others. Once ctx is
// done, ids not yet started fail with ctx.Err() without a request. Outcomes
// are returned in the order of ids.
func (c *Client) TrackMessages(ctx context.Context, ids []string) []TrackOutcome {
	outcomes := make([]TrackOutcome, len(ids))
	if len(ids) == 0 {
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(DefaultTrackConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = TrackOutcome{SMSID: id, Err: TrackError{SMSID: id, Err: err}}
				return nil
			}

			result, err := c.TrackMessage(ctx, id)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("sms_id", id).
					Msg("Failed to track message")
				outcomes[i] = TrackOutcome{SMSID: id, Err: TrackError{SMSID: id, Err: err}}
				return nil
			}
			outcomes[i] = TrackOutcome{SMSID: id, Result: result}
			return nil
		})
	}

	// Goroutines never return an error; failures are kept per id.
	g.Wait()
	return outcomes
}
