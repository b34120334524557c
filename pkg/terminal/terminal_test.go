package terminal

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/responsive"
)

type fakeSize struct {
	cols atomic.Int64
	err  error
}

func (f *fakeSize) get(int) (int, int, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	return int(f.cols.Load()), 24, nil
}

func newTestViewport(cols int) (*Viewport, *fakeSize) {
	size := &fakeSize{}
	size.cols.Store(int64(cols))
	v := New(-1)
	v.getSize = size.get
	return v, size
}

func TestViewport_Sync(t *testing.T) {
	v, size := newTestViewport(80)

	if err := v.Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if v.Width() != 80 {
		t.Errorf("expected width 80, got %v", v.Width())
	}

	size.cols.Store(120)
	v.CellWidth(8)
	if err := v.Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if v.Width() != 960 {
		t.Errorf("expected width 960, got %v", v.Width())
	}
}

func TestViewport_SyncError(t *testing.T) {
	v, size := newTestViewport(80)
	if err := v.Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	size.err = errors.New("not a terminal")
	if err := v.Sync(); err == nil {
		t.Fatal("expected error")
	}
	if v.Width() != 80 {
		t.Errorf("expected width to stay 80, got %v", v.Width())
	}
}

func TestViewport_IsTerminal(t *testing.T) {
	if New(-1).IsTerminal() {
		t.Error("expected invalid descriptor not to be a terminal")
	}
}

func TestViewport_FollowWithoutDebounce(t *testing.T) {
	v, size := newTestViewport(80)
	v.Debounce(0)

	notified := make(chan struct{}, 4)
	v.Subscribe(func() { notified <- struct{}{} })

	resized := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		v.follow(ctx, resized)
		close(done)
	}()

	size.cols.Store(100)
	resized <- struct{}{}

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for width update")
	}
	if v.Width() != 100 {
		t.Errorf("expected width 100, got %v", v.Width())
	}

	cancel()
	<-done
}

func TestViewport_FollowDebounces(t *testing.T) {
	clock := clockz.NewFakeClock()
	v, size := newTestViewport(80)
	v.Debounce(50 * time.Millisecond).Clock(clock)

	var notifications atomic.Int32
	v.Subscribe(func() { notifications.Add(1) })

	resized := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go v.follow(ctx, resized)

	size.cols.Store(90)
	resized <- struct{}{}
	size.cols.Store(100)
	resized <- struct{}{}

	// Allow goroutine to arm the timer
	time.Sleep(10 * time.Millisecond)

	if notifications.Load() != 0 {
		t.Errorf("expected no update while debouncing, got %d", notifications.Load())
	}

	clock.Advance(60 * time.Millisecond)
	clock.BlockUntilReady()

	// Allow goroutine to process timer
	time.Sleep(10 * time.Millisecond)

	if notifications.Load() != 1 {
		t.Errorf("expected 1 update, got %d", notifications.Load())
	}
	if v.Width() != 100 {
		t.Errorf("expected width 100, got %v", v.Width())
	}
}

func TestViewport_FollowAppliesPendingOnClose(t *testing.T) {
	clock := clockz.NewFakeClock()
	v, size := newTestViewport(80)
	v.Debounce(time.Hour).Clock(clock)

	resized := make(chan struct{}, 1)
	size.cols.Store(132)
	resized <- struct{}{}
	close(resized)

	v.follow(context.Background(), resized)

	if v.Width() != 132 {
		t.Errorf("expected pending resize to be applied, got %v", v.Width())
	}
}

func TestViewport_DrivesResolver(t *testing.T) {
	v, size := newTestViewport(60)
	v.Debounce(0)
	if err := v.Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	spec := responsive.Spec{
		{Name: "narrow", Value: responsive.Pair(false, 79)},
		{Name: "wide", Value: responsive.Pair(80, false)},
	}
	r := responsive.New(v, v, map[string]string{"narrow": "stacked", "wide": "columns"}).
		Reporter(responsive.ReporterFunc(func(context.Context, responsive.Diagnostic) {}))

	ctx := context.Background()
	if err := r.Start(ctx, spec); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer r.Close(ctx)

	if got, _ := r.Value(); got != "stacked" {
		t.Errorf("expected stacked, got %q", got)
	}

	size.cols.Store(120)
	if err := v.Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if got, _ := r.Value(); got != "columns" {
		t.Errorf("expected columns, got %q", got)
	}
}
