package feed

import (
	"sync"
)

// Trigger converts sentinel visibility reports into next-page requests.
// The visibility detection mechanism lives with the caller; anything able
// to report a visibility fraction can drive a Trigger. A threshold below
// 1.0 acts as the pre-emptive margin: the trigger fires before the
// sentinel is fully in view. The controller's loading flag is the natural
// lock against repeat firings while a fetch is in flight.
type Trigger struct {
	mu        sync.Mutex
	threshold float64
	ctrl      *Controller
	detached  bool
}

func NewTrigger(ctrl *Controller, threshold float64) *Trigger {
	return &Trigger{threshold: threshold, ctrl: ctrl}
}

// Observe handles one visibility report and returns whether a next-page
// request was issued. The trigger detaches itself once the controller
// reports exhaustion.
func (t *Trigger) Observe(ratio float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.detached || ratio < t.threshold {
		return false
	}

	state := t.ctrl.State()
	if !state.HasMore {
		t.detached = true
		return false
	}
	if state.Loading {
		return false
	}

	t.ctrl.RequestNextPage()
	return true
}

func (t *Trigger) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.detached = true
}

func (t *Trigger) Detached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.detached
}
