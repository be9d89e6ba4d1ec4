// Package view holds the console's navigation state: which of the three
// views is active. The controller owns no business data.
package view

import "sync"

// View names one of the console surfaces.
type View string

// The three views of the console.
const (
	Dashboard     View = "dashboard"
	Subscriptions View = "subscriptions"
	Alerts        View = "alerts"
)

// Controller is a single-selection state machine over the three views.
// The initial state is Dashboard and there is no terminal state.
type Controller struct {
	mu     sync.Mutex
	active View
}

// NewController creates a Controller showing the dashboard.
func NewController() *Controller {
	return &Controller{active: Dashboard}
}

// Select switches to v. Unknown views are ignored and the current
// selection stays: navigation is the only trigger and it never carries a
// side effect beyond the switch itself.
func (c *Controller) Select(v View) {
	switch v {
	case Dashboard, Subscriptions, Alerts:
	default:
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = v
}

// Active returns the current view.
func (c *Controller) Active() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Reset returns to the dashboard. Called on a fresh login: the selection
// does not survive session teardown.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = Dashboard
}
