package web

import (
	"time"

	"github.com/leighmacdonald/gridiron-tui/internal/playback"
)

type MessageType string

const (
	// Client to server.
	MessageSelectWeek MessageType = "select_week"
	MessageTogglePlay MessageType = "toggle_play"
	MessageStep       MessageType = "step"
	MessageSpeed      MessageType = "speed"
	MessageSeek       MessageType = "seek"

	// Server to client.
	MessageSnapshot MessageType = "snapshot"
	MessageOp       MessageType = "op"
	MessageState    MessageType = "state"
	MessageError    MessageType = "error"
)

// ClientMessage is a playback command sent by a browser.
type ClientMessage struct {
	Type  MessageType `json:"type"`
	Week  string      `json:"week,omitempty"`
	Dir   int         `json:"dir,omitempty"`
	Ms    int         `json:"ms,omitempty"`
	Index int         `json:"index,omitempty"`
}

type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type FramePayload struct {
	PosTeam  string  `json:"posteam"`
	DefTeam  string  `json:"defteam"`
	PlayType string  `json:"play_type"`
	Kind     string  `json:"kind"`
	YardLine float64 `json:"yardline_100"`
	Desc     string  `json:"desc"`
}

type StatePayload struct {
	Week       string        `json:"week"`
	Index      int           `json:"index"`
	Count      int           `json:"count"`
	Playing    bool          `json:"playing"`
	IntervalMs int64         `json:"interval_ms"`
	Current    *FramePayload `json:"current,omitempty"`
}

type SnapshotPayload struct {
	SVG   string       `json:"svg"`
	State StatePayload `json:"state"`
}

type WeeksResponse struct {
	Weeks []string `json:"weeks"`
	Error string   `json:"error,omitempty"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	ActiveClients int    `json:"active_clients"`
	Timestamp     string `json:"timestamp"`
}

func newMessage(msgType MessageType, payload any) ServerMessage {
	return ServerMessage{Type: msgType, Payload: payload, Timestamp: time.Now()}
}

func errorMessage(code string, message string) ServerMessage {
	return newMessage(MessageError, ErrorMessage{Code: code, Message: message})
}

func statePayload(state playback.State) StatePayload {
	payload := StatePayload{
		Week:       state.Week,
		Index:      state.Index,
		Count:      state.Count,
		Playing:    state.Playing,
		IntervalMs: state.Interval.Milliseconds(),
	}

	if state.Current != nil {
		payload.Current = &FramePayload{
			PosTeam:  state.Current.PosTeam,
			DefTeam:  state.Current.DefTeam,
			PlayType: state.Current.PlayType,
			Kind:     state.Current.Kind.String(),
			YardLine: state.Current.YardLine,
			Desc:     state.Current.Desc,
		}
	}

	return payload
}
