package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"citydrive/internal/drive"
)

const ProtocolVersion = 1

var errMissingType = errors.New("client message without type")

const (
	TypeHello   = "hello"
	TypeWelcome = "welcome"
	TypeInput   = "input"
	TypeResize  = "resize"
)

// ClientMsg is any JSON message sent by a browser client. Type selects
// which of the optional fields are meaningful.
type ClientMsg struct {
	Type    string `json:"type"`
	Version int    `json:"version,omitempty"`

	// hello
	Profile string `json:"profile,omitempty"`

	// input
	Input *drive.InputState `json:"input,omitempty"`

	// resize
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Welcome answers a hello with everything static about the session.
// Snapshots follow as binary msgpack frames.
type Welcome struct {
	Type      string            `json:"type"`
	Version   int               `json:"version"`
	SessionID string            `json:"session_id"`
	Profile   string            `json:"profile"`
	Profiles  []string          `json:"profiles"`
	TickRate  int               `json:"tick_rate"`
	Layout    *drive.CityLayout `json:"layout"`
	Rain      RainParams        `json:"rain"`
}

// RainParams lets clients run the rain field locally.
type RainParams struct {
	Drops     int     `json:"drops"`
	Area      float64 `json:"area"`
	MinY      float64 `json:"min_y"`
	SpanY     float64 `json:"span_y"`
	FallSpeed float64 `json:"fall_speed"`
}

func decodeClientMsg(b []byte) (ClientMsg, error) {
	var m ClientMsg
	if err := json.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("decode client message: %w", err)
	}
	if m.Type == "" {
		return m, errMissingType
	}
	return m, nil
}
