package symbol

import "encoding/json"

// wireNode is Node's on-disk shape: Command is serialized by name so
// module files are stable across a Command reordering, matching the
// DAP envelope's own preference for self-describing JSON fields
// over positional encoding.
type wireNode struct {
	Command string `json:"command"`
	A int `json:"a,omitempty"`
	B int `json:"b,omitempty"`
	Str string `json:"str,omitempty"`
	Num float64 `json:"num,omitempty"`
}

// EncodeModule serializes code as the on-disk bytecode format a
// compiler would emit. Compiling source into this format is out of
// scope here; this core only consumes it.
func EncodeModule(code []Node) ([]byte, error) {
	wire := make([]wireNode, len(code))
	for i, n := range code {
		name, ok := commandNames[n.Command]
		if !ok {
			name = "unknown"
		}
		wire[i] = wireNode{Command: name, A: n.A, B: n.B, Str: n.Str, Num: n.Num}
	}
	return json.Marshal(wire)
}

// DecodeModule parses the on-disk bytecode format back into a Node
// stream.
func DecodeModule(data []byte) ([]Node, error) {
	var wire []wireNode
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	code := make([]Node, len(wire))
	for i, w := range wire {
		cmd, ok := namesToCommand[w.Command]
		if !ok {
			return nil, &unknownCommandError{w.Command}
		}
		code[i] = Node{Command: cmd, A: w.A, B: w.B, Str: w.Str, Num: w.Num}
	}
	return code, nil
}

type unknownCommandError struct{ name string }

func (e *unknownCommandError) Error() string { return "symbol: unknown bytecode command " + e.name }
