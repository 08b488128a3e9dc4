package feed

import (
	"testing"

	"github.com/pixelpost/pixelpost/app/headlines"
)

func TestTrigger_FiresAtThreshold(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int][]headlines.Article{
		1: {article("https://example.com/1")},
		2: {article("https://example.com/2")},
	}}
	ctrl, done := newTestController(t, fetcher, false)
	trigger := NewTrigger(ctrl, 0.6)

	ctrl.ResetAndReload()
	waitFetch(t, done)

	if trigger.Observe(0.5) {
		t.Error("Expected no firing below the visibility threshold")
	}
	if !trigger.Observe(0.75) {
		t.Error("Expected a firing at the visibility threshold")
	}
	waitFetch(t, done)

	if got := ctrl.State().Page; got != 2 {
		t.Errorf("Expected the trigger to advance to page 2, got %d", got)
	}
}

func TestTrigger_LoadingFlagActsAsLock(t *testing.T) {
	release := make(chan struct{})
	fetcher := &stubFetcher{
		pages: map[int][]headlines.Article{1: {article("https://example.com/1")}},
		gate:  func(fetchCall) { <-release },
	}
	ctrl, done := newTestController(t, fetcher, false)
	trigger := NewTrigger(ctrl, 0.6)

	ctrl.ResetAndReload()

	// Repeated reports while the fetch is in flight must not fire.
	for i := 0; i < 5; i++ {
		if trigger.Observe(1.0) {
			t.Fatal("Expected no firing while loading")
		}
	}
	if fetcher.callCount() != 1 {
		t.Errorf("Expected a single in-flight fetch, got %d", fetcher.callCount())
	}

	close(release)
	waitFetch(t, done)
}

func TestTrigger_DetachesOnExhaustion(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int][]headlines.Article{1: {}}}
	ctrl, done := newTestController(t, fetcher, false)
	trigger := NewTrigger(ctrl, 0.6)

	ctrl.ResetAndReload()
	waitFetch(t, done)

	if trigger.Observe(1.0) {
		t.Error("Expected no firing after exhaustion")
	}
	if !trigger.Detached() {
		t.Error("Expected the trigger to detach once hasMore is false")
	}

	// Further scroll events are ignored entirely.
	if trigger.Observe(1.0) {
		t.Error("Expected a detached trigger to ignore reports")
	}
	if fetcher.callCount() != 1 {
		t.Errorf("Expected no fetches after exhaustion, got %d", fetcher.callCount())
	}
}

func TestTrigger_ExplicitDetach(t *testing.T) {
	fetcher := &stubFetcher{pages: map[int][]headlines.Article{
		1: {article("https://example.com/1")},
	}}
	ctrl, done := newTestController(t, fetcher, false)
	trigger := NewTrigger(ctrl, 0.6)

	ctrl.ResetAndReload()
	waitFetch(t, done)

	trigger.Detach()
	if trigger.Observe(1.0) {
		t.Error("Expected no firing after Detach")
	}
}
