package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const requestIDKey ctxKey = "req_id"

// WithRequestID attaches a request identifier to the context for log correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request identifier attached to the context, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Time logs the duration (and failure, if any) of a named operation.
// Use as: defer obs.Time(ctx, "amadeus.SearchOffers")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
