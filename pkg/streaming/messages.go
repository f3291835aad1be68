package streaming

import (
	"encoding/json"

	"github.com/OCAP2/hoopshot/pkg/core"
)

// Message type constants matching the streaming protocol.
const (
	TypeStartRun = "start_run"
	TypeSample   = "sample"
	TypeEndRun   = "end_run"
	TypeAck      = "ack"
)

// Envelope wraps all messages sent over the WebSocket.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AckMessage is the server's acknowledgement response.
type AckMessage struct {
	Type string `json:"type"` // always "ack"
	For  string `json:"for"`  // the message type being acknowledged
}

// StartRunPayload announces a run and the inputs it was computed from.
type StartRunPayload struct {
	RunID  string         `json:"runId"`
	Inputs core.RunInputs `json:"inputs"`
}

// SamplePayload carries one trajectory sample.
type SamplePayload struct {
	RunID   string  `json:"runId"`
	Seq     int     `json:"seq"`
	T       float64 `json:"t"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Entered bool    `json:"entered"`
}

// EndRunPayload closes a run with its outcome.
type EndRunPayload struct {
	RunID      string `json:"runId"`
	Entered    bool   `json:"entered"`
	NumSamples int    `json:"numSamples"`
}
