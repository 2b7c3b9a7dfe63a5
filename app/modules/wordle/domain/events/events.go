package wordleevents

// Default topics. Deployments may rename them in config.
const (
	// MessageReceivedTopic carries inbound chat messages (MessageReceivedPayload).
	MessageReceivedTopic = "wordle.message.received"
	// ReplyReadyTopic carries the reply to send back to the chat (ReplyReadyPayload).
	ReplyReadyTopic = "wordle.reply.ready"
)

// MessageReceivedPayload is one chat message forwarded by the chat bridge.
type MessageReceivedPayload struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Chat   string `json:"chat,omitempty"`
}

// ReplyReadyPayload is the text to post back into Chat.
type ReplyReadyPayload struct {
	Sender    string `json:"sender"`
	Chat      string `json:"chat,omitempty"`
	Kind      string `json:"kind"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Reply     string `json:"reply"`
}
