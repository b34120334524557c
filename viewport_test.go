package responsive

import "testing"

func TestViewport_Matches(t *testing.T) {
	v := NewViewport(600)

	tests := []struct {
		query string
		want  bool
	}{
		{MaxWidth(600), true},
		{MaxWidth(599), false},
		{MinWidth(600), true},
		{WidthBetween(481, 768), true},
		{WidthBetween(769, 1024), false},
		{"(orientation: portrait)", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		if got := v.Matches(tt.query); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestViewport_SetWidthNotifiesInOrder(t *testing.T) {
	v := NewViewport(100)

	var calls []string
	v.Subscribe(func() { calls = append(calls, "a") })
	v.Subscribe(func() { calls = append(calls, "b") })

	v.SetWidth(200)

	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Errorf("unexpected notifications %v", calls)
	}
	if v.Width() != 200 {
		t.Errorf("expected width 200, got %v", v.Width())
	}
}

func TestViewport_SameWidthDoesNotNotify(t *testing.T) {
	v := NewViewport(100)

	count := 0
	v.Subscribe(func() { count++ })
	v.SetWidth(100)

	if count != 0 {
		t.Errorf("expected no notification, got %d", count)
	}
}

func TestViewport_Unsubscribe(t *testing.T) {
	v := NewViewport(100)

	count := 0
	unsubscribe := v.Subscribe(func() { count++ })
	if v.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", v.Subscribers())
	}

	unsubscribe()
	unsubscribe()

	if v.Subscribers() != 0 {
		t.Errorf("expected 0 subscribers, got %d", v.Subscribers())
	}

	v.SetWidth(300)
	if count != 0 {
		t.Errorf("expected no notification after unsubscribe, got %d", count)
	}
}

func TestViewport_SubscriberMayReadWidth(t *testing.T) {
	v := NewViewport(100)

	var seen float64
	v.Subscribe(func() { seen = v.Width() })
	v.SetWidth(450)

	if seen != 450 {
		t.Errorf("expected subscriber to observe 450, got %v", seen)
	}
}

func TestViewport_UnsubscribeDuringNotify(t *testing.T) {
	v := NewViewport(100)

	var unsubscribe func()
	count := 0
	unsubscribe = v.Subscribe(func() {
		count++
		unsubscribe()
	})

	v.SetWidth(200)
	v.SetWidth(300)

	if count != 1 {
		t.Errorf("expected exactly one notification, got %d", count)
	}
}

func TestEvaluatorFunc(t *testing.T) {
	e := EvaluatorFunc(func(q string) bool { return q == "yes" })
	if !e.Matches("yes") || e.Matches("no") {
		t.Error("unexpected EvaluatorFunc result")
	}
}
