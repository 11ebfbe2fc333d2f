package breath

// Controller tracks the bridge mode, the latest breath reading and the
// resulting character state. It is not safe for concurrent use; feed it
// from the goroutine that owns the soft body.
type Controller struct {
	mode   Mode
	breath BreathState
	state  CharacterState
}

// NewController starts in the given mode with a normal character.
func NewController(mode Mode) *Controller {
	return &Controller{mode: mode}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Breath returns the latest breath reading.
func (c *Controller) Breath() BreathState { return c.breath }

// State returns the current character state.
func (c *Controller) State() CharacterState { return c.state }

// Apply folds an incoming message into the controller and reports whether
// the character state changed. Breath updates only count in the breath
// driven modes; pings, pongs and echoed character states are ignored.
func (c *Controller) Apply(p Payload) bool {
	switch m := p.(type) {
	case ModeSetup:
		c.mode = m.Mode
	case BreathUpdate:
		if c.mode != ModeBreathControl && c.mode != ModeBreathDetection {
			return false
		}
		c.breath = m.State
		return c.set(CharacterFor(m.State))
	}
	return false
}

// SetCharacterState applies a locally chosen state. It only takes effect
// in manual mode; when the state changes it returns the message to send
// to the bridge.
func (c *Controller) SetCharacterState(s CharacterState, timestamp float64) (CharacterUpdate, bool) {
	if c.mode != ModeManualControl || !c.set(s) {
		return CharacterUpdate{}, false
	}
	return CharacterUpdate{State: s, Timestamp: timestamp}, true
}

func (c *Controller) set(s CharacterState) bool {
	if s == c.state {
		return false
	}
	c.state = s
	return true
}
