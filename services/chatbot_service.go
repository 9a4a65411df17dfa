package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediguard-backend/knowledge"
	"mediguard-backend/models"
	"mediguard-backend/utils"
)

// ChatHistory keeps chat turns for the lifetime of a session.
type ChatHistory interface {
	AppendChatTurn(ctx context.Context, turn *models.ChatTurn) error
	ListChatTurns(ctx context.Context, sessionID string, limit int) ([]models.ChatTurn, error)
	ClearSession(ctx context.Context, sessionID string) error
}

type ChatbotService struct {
	intentClassifier *utils.IntentClassifier
	dialogue         knowledge.Dialogue
	symptomReplies   map[string]string
	history          ChatHistory
	picker           utils.Picker
	now              func() time.Time
	logger           *slog.Logger
}

// NewChatbotService builds the dialogue responder. history may be nil, in
// which case turns are not recorded.
func NewChatbotService(kb *knowledge.KnowledgeBase, history ChatHistory, opts ...Option) *ChatbotService {
	o := buildOptions(opts)
	dialogue := kb.Dialogue()

	replies := make(map[string]string, len(dialogue.Symptoms))
	for _, s := range dialogue.Symptoms {
		replies[s.Keyword] = s.Reply
	}

	return &ChatbotService{
		intentClassifier: utils.NewIntentClassifier(kb.IntentPatterns()),
		dialogue:         dialogue,
		symptomReplies:   replies,
		history:          history,
		picker:           o.picker,
		now:              o.now,
		logger:           o.logger,
	}
}

// Respond returns the reply text for message.
func (s *ChatbotService) Respond(message string) string {
	return s.Reply(message).Response
}

// Reply classifies message and builds the reply for the winning intent.
// It never fails: unmatched and empty messages get the default reply.
func (s *ChatbotService) Reply(message string) *models.ChatResponse {
	intent, keyword := s.intentClassifier.ClassifyIntent(message)

	var response *models.ChatResponse
	switch intent {
	case models.IntentEmergency:
		response = s.handleEmergency()
	case models.IntentSymptomSpecific:
		response = s.handleSymptom(keyword)
	case models.IntentGreeting:
		response = s.handleGreeting()
	case models.IntentGeneralAdvice:
		response = models.NewTextResponse(utils.PickOne(s.picker, s.dialogue.Advice.Replies), intent)
	default:
		response = models.NewTextResponse(s.dialogue.DefaultReply, models.IntentUnknown)
	}
	response.Keyword = keyword
	return response
}

// ProcessMessage replies to req and records the turn in the session
// history. A history failure is logged; the reply is still returned.
func (s *ChatbotService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}
	if req.Channel == "" {
		req.Channel = models.ChannelWeb
	}

	response := s.Reply(req.Message)
	response.SessionID = req.SessionID

	if s.history != nil {
		turn := &models.ChatTurn{
			SessionID:    req.SessionID,
			InputMessage: req.Message,
			ReplyText:    response.Response,
			Intent:       response.Intent,
			Channel:      req.Channel,
			Timestamp:    s.now(),
		}
		if err := s.history.AppendChatTurn(ctx, turn); err != nil {
			s.logger.Warn("Failed to save chat turn", "session_id", req.SessionID, "error", err)
		}
	}

	return response, nil
}

func (s *ChatbotService) GetChatHistory(ctx context.Context, sessionID string, limit int) ([]models.ChatTurn, error) {
	if s.history == nil {
		return []models.ChatTurn{}, nil
	}
	turns, err := s.history.ListChatTurns(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return turns, nil
}

func (s *ChatbotService) ClearChatHistory(ctx context.Context, sessionID string) error {
	if s.history == nil {
		return nil
	}
	if err := s.history.ClearSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}

// SupportedIntents lists the intent rules in evaluation order.
func (s *ChatbotService) SupportedIntents() []models.IntentSummary {
	policies := map[models.MessageIntent]string{
		models.IntentEmergency:       "fixed",
		models.IntentSymptomSpecific: "per_keyword",
		models.IntentGreeting:        "random",
		models.IntentGeneralAdvice:   "random",
		models.IntentUnknown:         "fixed",
	}

	summaries := make([]models.IntentSummary, 0, len(models.IntentPriority))
	for i, intent := range models.IntentPriority {
		keywords := s.intentClassifier.Keywords(intent)
		if keywords == nil {
			keywords = []string{}
		}
		summaries = append(summaries, models.IntentSummary{
			Intent:   intent,
			Priority: i + 1,
			Keywords: keywords,
			Policy:   policies[intent],
		})
	}
	return summaries
}

func (s *ChatbotService) handleEmergency() *models.ChatResponse {
	actions := make([]models.Action, 0, len(s.dialogue.Emergency.Call))
	for _, number := range s.dialogue.Emergency.Call {
		actions = append(actions, models.Action{
			Type:  "call",
			Label: "Call " + number,
			Payload: map[string]interface{}{
				"number": number,
			},
		})
	}

	return &models.ChatResponse{
		Response: s.dialogue.Emergency.Reply,
		Intent:   models.IntentEmergency,
		Actions:  actions,
	}
}

func (s *ChatbotService) handleSymptom(keyword string) *models.ChatResponse {
	advice := utils.PickOne(s.picker, s.dialogue.Advice.Replies)
	text := strings.TrimSpace(s.symptomReplies[keyword] + " " + advice)

	return &models.ChatResponse{
		Response: text,
		Intent:   models.IntentSymptomSpecific,
		Actions: []models.Action{
			{
				Type:  "quick_action",
				Label: "Run Symptom Check",
				Payload: map[string]interface{}{
					"action":  "assess",
					"symptom": keyword,
				},
			},
		},
	}
}

func (s *ChatbotService) handleGreeting() *models.ChatResponse {
	return &models.ChatResponse{
		Response: utils.PickOne(s.picker, s.dialogue.Greeting.Replies),
		Intent:   models.IntentGreeting,
		Actions: []models.Action{
			{
				Type:  "quick_action",
				Label: "Check Symptoms",
				Payload: map[string]interface{}{
					"action": "assess",
				},
			},
			{
				Type:  "quick_action",
				Label: "First Aid",
				Payload: map[string]interface{}{
					"action": "first_aid",
				},
			},
			{
				Type:  "quick_action",
				Label: "Emergency Help",
				Payload: map[string]interface{}{
					"action": "emergency",
				},
			},
		},
	}
}
