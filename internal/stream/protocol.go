package stream

import (
	"encoding/json"
	"fmt"
)

// MessageType discriminates the envelope variants of the streaming wire
// contract. A well-formed stream is exactly one start, zero or more chunks,
// then exactly one end or error.
type MessageType string

const (
	MessageStart MessageType = "start"
	MessageChunk MessageType = "chunk"
	MessageEnd   MessageType = "end"
	MessageError MessageType = "error"
)

// StartContent is the fixed placeholder sent while the reply is being built.
const StartContent = "正在思考中..."

// ErrorContent is the user-facing text of an error envelope.
const ErrorContent = "抱歉，服务暂时不可用。请稍后再试。"

// Metadata rides on the terminal end message.
type Metadata struct {
	Topic          string  `json:"topic,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
	ProcessingTime int64   `json:"processingTime,omitempty"`
}

// Message is one typed envelope of the incremental delivery protocol.
type Message struct {
	Type     MessageType `json:"type"`
	Content  string      `json:"content,omitempty"`
	Metadata *Metadata   `json:"metadata,omitempty"`
}

func Start() Message {
	return Message{Type: MessageStart, Content: StartContent}
}

func Chunk(content string) Message {
	return Message{Type: MessageChunk, Content: content}
}

func End(meta Metadata) Message {
	return Message{Type: MessageEnd, Metadata: &meta}
}

func Error() Message {
	return Message{Type: MessageError, Content: ErrorContent}
}

// EncodeFrame renders a message as one SSE data frame.
func EncodeFrame(m Message) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal stream message: %w", err)
	}
	return []byte(fmt.Sprintf("data: %s\n\n", data)), nil
}
