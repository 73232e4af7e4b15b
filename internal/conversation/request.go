package conversation

import "voice-assistant/internal/tools"

// Request is one reply generation: the system instructions, the turns so far
// and the tools the model may call while answering.
type Request struct {
	Instructions string
	Messages     []Message
	Tools        tools.Invoker
}

// MaxToolRounds bounds how many times a model may call tools before it has
// to answer in text.
const MaxToolRounds = 5
