// Package breath defines the messages exchanged with the breath-sensor
// bridge and the small state machine that turns them into a character
// state for the soft body. Transport is left to the caller: anything that
// yields an io.Reader of concatenated JSON objects works.
package breath

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// SchemaVersion is the message schema this package writes. Messages
// without a version field are accepted as version 0.
const SchemaVersion = 1

// MessageType tags a message on the wire.
type MessageType string

const (
	TypeModeSetup      MessageType = "mode_setup"
	TypeBreathUpdate   MessageType = "breath_update"
	TypeCharacterState MessageType = "character_state"
	TypePing           MessageType = "ping"
	TypePong           MessageType = "pong"
)

var (
	ErrUnknownType        = errors.New("unknown message type")
	ErrUnsupportedVersion = errors.New("unsupported schema version")
)

// Payload is one decoded message body.
type Payload interface {
	MessageType() MessageType
}

// ModeSetup announces the bridge's operating mode.
type ModeSetup struct {
	Mode        Mode   `json:"mode"`
	Description string `json:"description,omitempty"`
}

// BreathUpdate carries a new breath classification.
type BreathUpdate struct {
	State  BreathState `json:"state"`
	Source string      `json:"source,omitempty"`
}

// CharacterUpdate reports a locally chosen character state.
type CharacterUpdate struct {
	State     CharacterState `json:"state"`
	Timestamp float64        `json:"timestamp"`
}

// Ping asks the bridge for a Pong.
type Ping struct {
	Timestamp float64 `json:"timestamp"`
}

// Pong answers a Ping.
type Pong struct {
	Timestamp float64 `json:"timestamp,omitempty"`
}

func (ModeSetup) MessageType() MessageType       { return TypeModeSetup }
func (BreathUpdate) MessageType() MessageType    { return TypeBreathUpdate }
func (CharacterUpdate) MessageType() MessageType { return TypeCharacterState }
func (Ping) MessageType() MessageType            { return TypePing }
func (Pong) MessageType() MessageType            { return TypePong }

// header is the part of every message read before the body.
type header struct {
	Version int         `json:"version"`
	Type    MessageType `json:"type"`
}

// Decode parses one JSON message.
func Decode(data []byte) (Payload, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decoding message header: %w", err)
	}
	if h.Version > SchemaVersion {
		return nil, fmt.Errorf("message version %d: %w", h.Version, ErrUnsupportedVersion)
	}

	var p Payload
	switch h.Type {
	case TypeModeSetup:
		var m ModeSetup
		p = &m
	case TypeBreathUpdate:
		var m BreathUpdate
		p = &m
	case TypeCharacterState:
		var m CharacterUpdate
		p = &m
	case TypePing:
		var m Ping
		p = &m
	case TypePong:
		var m Pong
		p = &m
	default:
		return nil, fmt.Errorf("%q: %w", h.Type, ErrUnknownType)
	}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", h.Type, err)
	}
	return deref(p), nil
}

// deref returns the value behind the pointers Decode unmarshals into, so
// callers can type-switch on plain struct types.
func deref(p Payload) Payload {
	switch m := p.(type) {
	case *ModeSetup:
		return *m
	case *BreathUpdate:
		return *m
	case *CharacterUpdate:
		return *m
	case *Ping:
		return *m
	case *Pong:
		return *m
	}
	return p
}

// Encode renders p with the current schema version and its type tag.
func Encode(p Payload) ([]byte, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", p.MessageType(), err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", p.MessageType(), err)
	}
	fields["version"] = json.RawMessage(fmt.Sprint(SchemaVersion))
	tag, _ := json.Marshal(p.MessageType())
	fields["type"] = tag
	return json.Marshal(fields)
}

// Decoder reads a stream of concatenated JSON messages.
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(r)}
}

// Next returns the next message, or io.EOF at the end of the stream.
func (d *Decoder) Next() (Payload, error) {
	var raw json.RawMessage
	if err := d.dec.Decode(&raw); err != nil {
		return nil, err
	}
	return Decode(raw)
}
