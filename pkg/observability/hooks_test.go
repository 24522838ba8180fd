package observability

import (
	"context"
	"testing"
	"time"
)

type recordingRenderHooks struct {
	starts, completes int
}

func (r *recordingRenderHooks) OnRenderStart(context.Context, int, int) { r.starts++ }
func (r *recordingRenderHooks) OnRenderComplete(context.Context, int, time.Duration, error) {
	r.completes++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	// Must not panic.
	Render().OnRenderStart(context.Background(), 10, 1)
	Render().OnRenderComplete(context.Background(), 10, time.Millisecond, nil)
	Reduce().OnReduce(context.Background(), "lttb", 1000, 100, time.Millisecond)
	Diff().OnDiff(context.Background(), 5, 100, false)
}

func TestSetRenderHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingRenderHooks{}
	SetRenderHooks(rec)
	Render().OnRenderStart(context.Background(), 10, 1)
	Render().OnRenderComplete(context.Background(), 10, time.Millisecond, nil)

	if rec.starts != 1 || rec.completes != 1 {
		t.Errorf("starts=%d completes=%d, want 1/1", rec.starts, rec.completes)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingRenderHooks{}
	SetRenderHooks(rec)
	SetRenderHooks(nil)
	Render().OnRenderStart(context.Background(), 1, 1)
	if rec.starts != 1 {
		t.Error("nil registration should keep the previous hooks")
	}
}
