package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestWithRequestIDKeepsExisting(t *testing.T) {
	ctx := WithRequestID(context.Background())
	id := RequestID(ctx)
	if id == "" {
		t.Fatal("expected a request id")
	}
	if got := RequestID(WithRequestID(ctx)); got != id {
		t.Fatalf("request id = %q, want %q", got, id)
	}
}

func TestTimeLogsError(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	err := errors.New("boom")
	Time(context.Background(), "op.test")(&err)

	out := buf.String()
	if !strings.Contains(out, "WARN: ") || !strings.Contains(out, "op=op.test") || !strings.Contains(out, "err=boom") {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestTimeLogsSuccess(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	var err error
	Time(context.Background(), "op.ok")(&err)

	out := buf.String()
	if !strings.Contains(out, "DEBUG: ") || strings.Contains(out, "err=") {
		t.Fatalf("unexpected log line: %q", out)
	}
}
