// Package install drives the install affordance: a small state machine fed by
// a platform capability query, with per-platform fallback instructions when
// no native install is possible.
package install

import (
	"fmt"

	"organix/internal/logging"
)

// Capability is what the platform reports about installing the app.
type Capability int

const (
	// Unsupported means no native install flow exists; instructions are shown.
	Unsupported Capability = iota
	// Installable means a native install can be prompted.
	Installable
	// Standalone means the app is already running as an installed app.
	Standalone
)

func (c Capability) String() string {
	switch c {
	case Unsupported:
		return "unsupported"
	case Installable:
		return "installable"
	case Standalone:
		return "standalone"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

// Prober answers the capability query.
type Prober interface {
	Probe() Capability
}

// State is the controller state.
type State int

const (
	Idle State = iota
	Promptable
	Prompted
	Accepted
	Dismissed
	Hidden
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Promptable:
		return "promptable"
	case Prompted:
		return "prompted"
	case Accepted:
		return "accepted"
	case Dismissed:
		return "dismissed"
	case Hidden:
		return "hidden"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome is the user's answer to a native prompt.
type Outcome int

const (
	OutcomeDismissed Outcome = iota
	OutcomeAccepted
)

// Controller is the install state machine.
type Controller struct {
	state        State
	instructions bool
}

// NewController returns a controller in Idle.
func NewController() *Controller {
	return &Controller{}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Signal feeds a capability into the machine. Standalone is terminal.
func (c *Controller) Signal(capability Capability) {
	if c.state == Hidden {
		return
	}
	switch capability {
	case Standalone:
		c.set(Hidden)
		c.instructions = false
	case Installable:
		if c.state == Idle {
			c.set(Promptable)
		}
	}
}

// Trigger handles the user activating the install affordance. It returns true
// when the caller must show the native prompt and later call Resolve;
// otherwise the fallback instructions are opened.
func (c *Controller) Trigger() bool {
	switch c.state {
	case Hidden, Accepted:
		return false
	case Promptable:
		c.set(Prompted)
		return true
	case Prompted:
		return false
	default:
		c.instructions = true
		return false
	}
}

// Resolve records the answer to a native prompt.
func (c *Controller) Resolve(o Outcome) {
	if c.state != Prompted {
		return
	}
	if o == OutcomeAccepted {
		c.set(Accepted)
		return
	}
	c.set(Dismissed)
}

// CloseInstructions hides the fallback instructions.
func (c *Controller) CloseInstructions() {
	c.instructions = false
}

// ShowingInstructions reports whether the fallback instructions are open.
func (c *Controller) ShowingInstructions() bool {
	return c.instructions && c.state != Hidden
}

// Visible reports whether any install affordance should be drawn. In Idle
// the affordance leads to the fallback instructions.
func (c *Controller) Visible() bool {
	return c.state != Hidden && c.state != Accepted
}

// ButtonVisible reports whether the install button itself should be drawn.
func (c *Controller) ButtonVisible() bool {
	return c.Visible() && !c.instructions
}

func (c *Controller) set(s State) {
	if c.state == s {
		return
	}
	logging.L().Debug("install state", "from", c.state, "to", s)
	c.state = s
}
