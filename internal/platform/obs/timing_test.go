package obs

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	if got := RequestID(ctx); got != "" {
		t.Errorf("RequestID on a bare context = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "abc-123")
	if got := RequestID(ctx); got != "abc-123" {
		t.Errorf("RequestID = %q, want abc-123", got)
	}
}

func TestTimeDoesNotPanicWithoutError(t *testing.T) {
	done := Time(context.Background(), "test.op")
	done(nil)

	var err error
	done = Time(WithRequestID(context.Background(), "x"), "test.op")
	done(&err)
}
