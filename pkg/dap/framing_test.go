package dap

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestFramerRoundTripsRequest(t *testing.T) {
	var wire bytes.Buffer
	writer := NewFramer(nil, &wire)

	req, err := NewRequest(1, RequestInitialize, InitializeArguments{LinesStartAt1: true, ColumnsStartAt1: true})
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if err := writer.WriteMessage(req); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	reader := NewFramer(bytes.NewReader(wire.Bytes()), nil)
	got, err := reader.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if got.Type != TypeRequest || got.Command != RequestInitialize || got.Seq != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestFramerRoundTripsEventWithBody(t *testing.T) {
	var wire bytes.Buffer
	writer := NewFramer(nil, &wire)

	evt, err := NewEvent(2, EventStopped, StoppedEventBody{Reason: StopReasonBreakpoint, ThreadID: 1, AllThreadsStopped: true})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	if err := writer.WriteMessage(evt); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	reader := NewFramer(bytes.NewReader(wire.Bytes()), nil)
	got, err := reader.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if got.Type != TypeEvent || got.Event != EventStopped {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	var body StoppedEventBody
	if err := json.Unmarshal(got.Body, &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Reason != StopReasonBreakpoint || body.ThreadID != 1 || !body.AllThreadsStopped {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestFramerRejectsMissingContentLength(t *testing.T) {
	reader := NewFramer(bytes.NewReader([]byte("\r\n")), nil)
	if _, err := reader.ReadMessage(); err == nil {
		t.Fatalf("want error for missing Content-Length header")
	}
}

func TestFramerReadsConsecutiveMessages(t *testing.T) {
	var wire bytes.Buffer
	writer := NewFramer(nil, &wire)
	for i := 1; i <= 3; i++ {
		msg, err := NewRequest(i, RequestNext, nil)
		if err != nil {
			t.Fatalf("NewRequest: %v", err)
		}
		if err := writer.WriteMessage(msg); err != nil {
			t.Fatalf("WriteMessage: %v", err)
		}
	}

	reader := NewFramer(bytes.NewReader(wire.Bytes()), nil)
	for i := 1; i <= 3; i++ {
		got, err := reader.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage %d: %v", i, err)
		}
		if got.Seq != i || got.Command != RequestNext {
			t.Fatalf("message %d mismatch: %+v", i, got)
		}
	}
}
