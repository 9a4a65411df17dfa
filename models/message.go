package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageIntent string

const (
	IntentEmergency       MessageIntent = "emergency"
	IntentSymptomSpecific MessageIntent = "symptom_specific"
	IntentGreeting        MessageIntent = "greeting"
	IntentGeneralAdvice   MessageIntent = "general_advice"
	IntentUnknown         MessageIntent = "unknown"
)

// IntentPriority is the order in which intent rules are evaluated.
// IntentUnknown is the fallback and always matches.
var IntentPriority = []MessageIntent{
	IntentEmergency,
	IntentSymptomSpecific,
	IntentGreeting,
	IntentGeneralAdvice,
	IntentUnknown,
}

// MessageChannel represents the communication channel
type MessageChannel string

const (
	ChannelWeb       MessageChannel = "web"
	ChannelWebSocket MessageChannel = "websocket"
)

// ChatTurn is one message/reply exchange. The responder produces it; the
// session store keeps it for as long as the session lives.
type ChatTurn struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID    string             `bson:"session_id" json:"session_id"`
	InputMessage string             `bson:"input_message" json:"input_message"`
	ReplyText    string             `bson:"reply_text" json:"reply_text"`
	Intent       MessageIntent      `bson:"intent" json:"intent"`
	Channel      MessageChannel     `bson:"channel,omitempty" json:"channel,omitempty"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
	ExpiresAt    time.Time          `bson:"expires_at" json:"-"`
}

type ChatRequest struct {
	Message   string         `json:"message"`
	SessionID string         `json:"session_id"`
	Channel   MessageChannel `json:"channel,omitempty"`
}

type ChatResponse struct {
	Response  string        `json:"response"`
	Intent    MessageIntent `json:"intent"`
	Keyword   string        `json:"keyword,omitempty"`
	SessionID string        `json:"session_id,omitempty"`
	Actions   []Action      `json:"actions,omitempty"`
}

type Action struct {
	Type    string                 `json:"type"`
	Label   string                 `json:"label"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// IntentSummary describes one intent rule for clients that render help text.
type IntentSummary struct {
	Intent   MessageIntent `json:"intent"`
	Priority int           `json:"priority"`
	Keywords []string      `json:"keywords"`
	Policy   string        `json:"policy"`
}

// NewTextResponse creates a reply without actions
func NewTextResponse(text string, intent MessageIntent) *ChatResponse {
	return &ChatResponse{
		Response: text,
		Intent:   intent,
	}
}
