// Package dap implements the wire contract of the Debug Adapter
// Protocol subset used here: Content-Length framing and the
// request/response/event envelope. This is the contract surface only —
// a full debug server (breakpoint evaluation, variable inspection) is
// out of scope; what's here is enough for a host to frame and
// decode/encode the named message kinds.
package dap

import "encoding/json"

// MessageType is the top-level `type` discriminator of every DAP
// envelope.
type MessageType string

const (
	TypeRequest MessageType = "request"
	TypeResponse MessageType = "response"
	TypeEvent MessageType = "event"
)

// Message is the envelope shared by every DAP payload. Seq is assigned
// by the sender; RequestSeq/Success/Command/Event are populated
// depending on Type.
type Message struct {
	Seq int `json:"seq"`
	Type MessageType `json:"type"`
	Command string `json:"command,omitempty"`
	RequestSeq int `json:"request_seq,omitempty"`
	Success bool `json:"success,omitempty"`
	Event string `json:"event,omitempty"`
	Body json.RawMessage `json:"body,omitempty"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Message string `json:"message,omitempty"`
}

// Requests the core must accept.
const (
	RequestInitialize = "initialize"
	RequestLaunch = "launch"
	RequestConfigurationDone = "configurationDone"
	RequestSetBreakpoints = "setBreakpoints"
	RequestBreakpointLocations = "breakpointLocations"
	RequestThreads = "threads"
	RequestStackTrace = "stackTrace"
	RequestScopes = "scopes"
	RequestVariables = "variables"
	RequestContinue = "continue"
	RequestNext = "next"
	RequestStepIn = "stepIn"
	RequestStepOut = "stepOut"
	RequestPause = "pause"
	RequestDisconnect = "disconnect"
	RequestTerminate = "terminate"
)

// Event kinds emitted.
const (
	EventInitialized = "initialized"
	EventStopped = "stopped"
	EventThread = "thread"
	EventBreakpoint = "breakpoint"
	EventModule = "module"
	EventLoadedSource = "loadedSource"
	EventOutput = "output"
	EventExited = "exited"
	EventTerminated = "terminated"
)

// Stopped event reasons.
const (
	StopReasonBreakpoint = "breakpoint"
	StopReasonException = "exception"
	StopReasonPause = "pause"
	StopReasonStep = "step"
)

// InitializeArguments carries the line/column numbering the client
// wants; defaults are 1-based.
type InitializeArguments struct {
	LinesStartAt1 bool `json:"linesStartAt1"`
	ColumnsStartAt1 bool `json:"columnsStartAt1"`
}

// StoppedEventBody is the payload of a `stopped` event.
type StoppedEventBody struct {
	Reason string `json:"reason"`
	ThreadID int `json:"threadId,omitempty"`
	AllThreadsStopped bool `json:"allThreadsStopped,omitempty"`
}

// NewRequest builds a request envelope with the given sequence number.
func NewRequest(seq int, command string, args interface{}) (*Message, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	return &Message{Seq: seq, Type: TypeRequest, Command: command, Arguments: raw}, nil
}

// NewResponse builds a response envelope to request req.
func NewResponse(seq int, req *Message, success bool, body interface{}) (*Message, error) {
	var raw json.RawMessage
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return &Message{Seq: seq, Type: TypeResponse, Command: req.Command, RequestSeq: req.Seq, Success: success, Body: raw}, nil
}

// NewEvent builds an event envelope.
func NewEvent(seq int, event string, body interface{}) (*Message, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &Message{Seq: seq, Type: TypeEvent, Event: event, Body: raw}, nil
}
