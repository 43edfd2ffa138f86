package obs

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTimeLogsOutcome(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	ctx := WithRequestID(context.Background(), "req-1")

	func() (err error) {
		defer Time(ctx, "orders.list")(&err)
		return nil
	}()

	func() (err error) {
		defer Time(ctx, "orders.get")(&err)
		return errors.New("boom")
	}()

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}

	if entries[0].Level != zap.DebugLevel || entries[0].ContextMap()["op"] != "orders.list" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Level != zap.WarnLevel || entries[1].ContextMap()["req_id"] != "req-1" {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}
	if entries[1].ContextMap()["error"] != "boom" {
		t.Errorf("error field = %v", entries[1].ContextMap()["error"])
	}
}
