package breath

import "fmt"

// Mode selects who drives the character state.
type Mode int

const (
	// ModeBreathControl lets sensed breathing drive the character.
	ModeBreathControl Mode = iota
	// ModeManualControl lets the local user drive the character; changes are
	// reported back to the sensor bridge. Its wire name is "unity_control".
	ModeManualControl
	// ModeBreathDetection reports breathing without a control loop.
	ModeBreathDetection
)

var modeNames = map[Mode]string{
	ModeBreathControl:   "breath_control",
	ModeManualControl:   "unity_control",
	ModeBreathDetection: "breath_detection",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the wire names of the modes.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("unknown mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// BreathState is the classifier's reading of the current breath.
type BreathState int

const (
	BreathUndecided BreathState = iota
	BreathInhale
	BreathExhale
)

var breathNames = map[BreathState]string{
	BreathUndecided: "undecided",
	BreathInhale:    "likely_INHALE",
	BreathExhale:    "likely_EXHALE",
}

func (b BreathState) String() string {
	if s, ok := breathNames[b]; ok {
		return s
	}
	return fmt.Sprintf("BreathState(%d)", int(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b BreathState) MarshalText() ([]byte, error) {
	if _, ok := breathNames[b]; !ok {
		return nil, fmt.Errorf("unknown breath state %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BreathState) UnmarshalText(text []byte) error {
	for v, name := range breathNames {
		if name == string(text) {
			*b = v
			return nil
		}
	}
	return fmt.Errorf("unknown breath state %q", text)
}

// CharacterState is how the soft body should present itself.
type CharacterState int

const (
	Normal CharacterState = iota
	Enlarged
	Shrunken
)

var characterNames = map[CharacterState]string{
	Normal:   "normal",
	Enlarged: "enlarged",
	Shrunken: "shrunken",
}

func (c CharacterState) String() string {
	if s, ok := characterNames[c]; ok {
		return s
	}
	return fmt.Sprintf("CharacterState(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c CharacterState) MarshalText() ([]byte, error) {
	if _, ok := characterNames[c]; !ok {
		return nil, fmt.Errorf("unknown character state %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CharacterState) UnmarshalText(text []byte) error {
	for v, name := range characterNames {
		if name == string(text) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("unknown character state %q", text)
}

// CharacterFor maps a breath reading to a character state: inhaling
// shrinks, exhaling enlarges, undecided returns to normal.
func CharacterFor(b BreathState) CharacterState {
	switch b {
	case BreathInhale:
		return Shrunken
	case BreathExhale:
		return Enlarged
	default:
		return Normal
	}
}
