package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediguard-backend/knowledge"
	"mediguard-backend/models"
	"mediguard-backend/utils"
)

type fakeHistory struct {
	turns  []models.ChatTurn
	err    error
	clears []string
}

func (f *fakeHistory) AppendChatTurn(_ context.Context, turn *models.ChatTurn) error {
	if f.err != nil {
		return f.err
	}
	f.turns = append(f.turns, *turn)
	return nil
}

func (f *fakeHistory) ListChatTurns(_ context.Context, sessionID string, _ int) ([]models.ChatTurn, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ChatTurn
	for _, t := range f.turns {
		if t.SessionID == sessionID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeHistory) ClearSession(_ context.Context, sessionID string) error {
	f.clears = append(f.clears, sessionID)
	return f.err
}

func newTestChatbot(history ChatHistory) (*ChatbotService, knowledge.Dialogue) {
	kb := knowledge.MustDefault()
	return NewChatbotService(kb, history, WithPicker(utils.FixedPicker(1))), kb.Dialogue()
}

func TestRespondEmergencyWins(t *testing.T) {
	s, d := newTestChatbot(nil)

	assert.Equal(t, d.Emergency.Reply, s.Respond("I think I'm having a heart attack"))
	assert.Equal(t, d.Emergency.Reply, s.Respond("hello, I have a fever and chest pain"))
	assert.Equal(t, d.Emergency.Reply, s.Respond("I CAN'T BREATHE"))

	reply := s.Reply("this is an emergency")
	assert.Equal(t, models.IntentEmergency, reply.Intent)
	assert.Equal(t, "emergency", reply.Keyword)
	require.Len(t, reply.Actions, 2)
	assert.Equal(t, "112", reply.Actions[0].Payload["number"])
}

func TestRespondSymptomAppendsAdvice(t *testing.T) {
	s, d := newTestChatbot(nil)

	got := s.Respond("hi, I've got a cough")
	assert.Equal(t, d.Symptoms[1].Reply+" "+d.Advice.Replies[1], got)

	reply := s.Reply("My stomach hurts")
	assert.Equal(t, models.IntentSymptomSpecific, reply.Intent)
	assert.Equal(t, "stomach", reply.Keyword)
}

func TestRespondSymptomTableOrder(t *testing.T) {
	s, d := newTestChatbot(nil)

	// fever is listed before headache.
	got := s.Respond("headache and fever")
	assert.Equal(t, d.Symptoms[0].Reply+" "+d.Advice.Replies[1], got)
}

func TestRespondGreeting(t *testing.T) {
	s, d := newTestChatbot(nil)

	got := s.Respond("hello, can you help me")
	assert.Contains(t, d.Greeting.Replies, got)
	assert.NotEqual(t, d.DefaultReply, got)
}

func TestRespondAdvice(t *testing.T) {
	s, d := newTestChatbot(nil)

	got := s.Respond("Any suggestions for staying well?")
	assert.Equal(t, d.Advice.Replies[1], got)
}

func TestRespondDefault(t *testing.T) {
	s, d := newTestChatbot(nil)

	for _, msg := range []string{"what is the capital of France", "", "   \t"} {
		reply := s.Reply(msg)
		assert.Equal(t, d.DefaultReply, reply.Response)
		assert.Equal(t, models.IntentUnknown, reply.Intent)
		assert.Empty(t, reply.Actions)
	}
}

func TestProcessMessageRecordsTurn(t *testing.T) {
	history := &fakeHistory{}
	s, d := newTestChatbot(history)

	resp, err := s.ProcessMessage(context.Background(), models.ChatRequest{
		Message:   "what is the capital of France",
		SessionID: "abc",
	})
	require.NoError(t, err)
	assert.Equal(t, d.DefaultReply, resp.Response)
	assert.Equal(t, "abc", resp.SessionID)

	require.Len(t, history.turns, 1)
	turn := history.turns[0]
	assert.Equal(t, "abc", turn.SessionID)
	assert.Equal(t, "what is the capital of France", turn.InputMessage)
	assert.Equal(t, d.DefaultReply, turn.ReplyText)
	assert.Equal(t, models.ChannelWeb, turn.Channel)
	assert.False(t, turn.Timestamp.IsZero())
}

func TestProcessMessageAssignsSession(t *testing.T) {
	s, _ := newTestChatbot(nil)

	resp, err := s.ProcessMessage(context.Background(), models.ChatRequest{Message: "hey"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, models.IntentGreeting, resp.Intent)
}

func TestProcessMessageSurvivesHistoryFailure(t *testing.T) {
	history := &fakeHistory{err: errors.New("store down")}
	s, d := newTestChatbot(history)

	resp, err := s.ProcessMessage(context.Background(), models.ChatRequest{Message: "stroke", SessionID: "x"})
	require.NoError(t, err)
	assert.Equal(t, d.Emergency.Reply, resp.Response)

	_, err = s.GetChatHistory(context.Background(), "x", 10)
	assert.ErrorContains(t, err, "store down")
}

func TestProcessMessageCancelledContext(t *testing.T) {
	s, _ := newTestChatbot(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ProcessMessage(ctx, models.ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChatHistoryWithoutStore(t *testing.T) {
	s, _ := newTestChatbot(nil)

	turns, err := s.GetChatHistory(context.Background(), "x", 10)
	require.NoError(t, err)
	assert.Empty(t, turns)
	assert.NoError(t, s.ClearChatHistory(context.Background(), "x"))
}

func TestSupportedIntentsOrder(t *testing.T) {
	s, _ := newTestChatbot(nil)

	intents := s.SupportedIntents()
	require.Len(t, intents, 5)
	assert.Equal(t, models.IntentEmergency, intents[0].Intent)
	assert.Equal(t, "per_keyword", intents[1].Policy)
	assert.Equal(t, models.IntentUnknown, intents[4].Intent)
	assert.Empty(t, intents[4].Keywords)
}
