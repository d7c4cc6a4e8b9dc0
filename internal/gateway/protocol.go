package gateway

// Frame types for the WebSocket call protocol. A connection carries
// exactly one call: the client opens with "hello", the server drives
// the conversation with "say" and "prompt" frames, the client answers
// prompts with "utterance" frames, and "end" closes the call.
const (
	FrameTypeHello     = "hello"
	FrameTypeConnected = "connected"
	FrameTypeSay       = "say"
	FrameTypePrompt    = "prompt"
	FrameTypeUtterance = "utterance"
	FrameTypeEnd       = "end"
	FrameTypeError     = "error"
)

// Frame is the envelope for all WebSocket call messages.
type Frame struct {
	Type string `json:"type"`

	// Hello fields
	Token string `json:"token,omitempty"`

	// Speech fields (say, prompt, utterance). An empty prompt text means
	// the agent is listening without asking anything.
	Text string `json:"text,omitempty"`

	// Connected / end fields
	CallID  string `json:"callId,omitempty"`
	Outcome string `json:"outcome,omitempty"`

	// Error fields
	Reason string `json:"reason,omitempty"`
}

func sayFrame(text string) Frame       { return Frame{Type: FrameTypeSay, Text: text} }
func promptFrame(text string) Frame    { return Frame{Type: FrameTypePrompt, Text: text} }
func errorFrame(reason string) Frame   { return Frame{Type: FrameTypeError, Reason: reason} }
func connectedFrame(callID string) Frame {
	return Frame{Type: FrameTypeConnected, CallID: callID}
}
func endFrame(callID, outcome string) Frame {
	return Frame{Type: FrameTypeEnd, CallID: callID, Outcome: outcome}
}
