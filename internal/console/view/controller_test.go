package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestController(t *testing.T) {
	c := NewController()
	assert.Equal(t, Dashboard, c.Active(), "initial view is the dashboard")

	c.Select(Alerts)
	assert.Equal(t, Alerts, c.Active())

	c.Select(Subscriptions)
	assert.Equal(t, Subscriptions, c.Active())

	// An unknown view leaves the selection untouched.
	c.Select(View("settings"))
	assert.Equal(t, Subscriptions, c.Active())

	c.Reset()
	assert.Equal(t, Dashboard, c.Active())
}
