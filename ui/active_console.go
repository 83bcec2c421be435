package ui

import "fyne.io/fyne/v2"

// ActiveConsole tracks which console window is on screen. The login
// and dashboard swaps happen on the UI thread; the request pipeline's
// unauthorized hook fires on request goroutines, so Expire hops onto
// the UI thread before touching the tracked pointer.
type ActiveConsole struct {
	dash *DashboardUI
}

// Set records the console now showing. Pass nil when returning to the
// login window. Must run on the UI thread, which all the login and
// logout callbacks already do.
func (c *ActiveConsole) Set(dash *DashboardUI) {
	c.dash = dash
}

// Expire tears down the showing console after the backend rejected its
// credential. Safe to call from any goroutine; a 401 while the login
// window is up is a no-op here, it just surfaces as a failed sign-in.
func (c *ActiveConsole) Expire() {
	fyne.Do(func() {
		if c.dash == nil {
			return
		}
		expired := c.dash
		c.dash = nil
		expired.SessionExpired()
	})
}
