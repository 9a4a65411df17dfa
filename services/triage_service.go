package services

import (
	"log/slog"
	"strings"
	"time"

	"mediguard-backend/knowledge"
	"mediguard-backend/models"
	"mediguard-backend/utils"
)

// Option configures the triage and chatbot services.
type Option func(*options)

type options struct {
	picker utils.Picker
	now    func() time.Time
	logger *slog.Logger
}

// WithPicker replaces the uniform random picker, e.g. with a
// utils.FixedPicker in tests.
func WithPicker(p utils.Picker) Option {
	return func(o *options) { o.picker = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{
		picker: utils.NewRandomPicker(0),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TriageService is the risk classifier plus the read-only lookups that go
// with an assessment.
type TriageService struct {
	kb     *knowledge.KnowledgeBase
	picker utils.Picker
	now    func() time.Time
}

func NewTriageService(kb *knowledge.KnowledgeBase, opts ...Option) *TriageService {
	o := buildOptions(opts)
	return &TriageService{
		kb:     kb,
		picker: o.picker,
		now:    o.now,
	}
}

// Assess classifies the reported symptoms. Tiers are scanned High, Medium,
// Low and within a tier the lexicon is scanned in order; the first phrase
// contained in the joined, lowercased input decides the tier. With no
// match the result is Low / "General Discomfort".
func (s *TriageService) Assess(symptoms []string) *models.Assessment {
	lowered := utils.LowerAll(symptoms)

	for _, tier := range models.TierOrder {
		profile, ok := s.kb.Profile(tier)
		if !ok {
			continue
		}
		if phrase, ok := utils.FirstMatch(profile.Lexicon, lowered); ok {
			return s.newAssessment(symptoms, profile, utils.PickOne(s.picker, profile.Conditions), phrase)
		}
	}

	low, _ := s.kb.Profile(models.TierLow)
	return s.newAssessment(symptoms, low, models.DefaultCondition, "")
}

func (s *TriageService) newAssessment(symptoms []string, profile models.TierProfile, condition, phrase string) *models.Assessment {
	return &models.Assessment{
		ReportedSymptoms: append([]string{}, symptoms...),
		Tier:             profile.Tier,
		TierLabel:        profile.Tier.Label(),
		Condition:        condition,
		MatchedPhrase:    phrase,
		Recommendation:   profile.Recommendation,
		AssessedAt:       s.now(),
	}
}

// AssessWithCare runs Assess and attaches the follow-up guidance shown with
// a result: the emergency protocol for High, home care for Medium and Low.
func (s *TriageService) AssessWithCare(symptoms []string) *models.Assessment {
	a := s.Assess(symptoms)
	if a.Tier == models.TierHigh {
		a.EmergencyProtocol = s.kb.EmergencyProtocol()
	} else {
		a.HomeCare = s.HomeCare(symptoms)
	}
	return a
}

// HomeCare returns at most one remedy per reported symptom: the first
// remedy keyword, in table order, contained in the symptom.
func (s *TriageService) HomeCare(symptoms []string) []models.RemedyNote {
	remedies := s.kb.Remedies()
	var notes []models.RemedyNote
	for _, symptom := range symptoms {
		lowered := strings.ToLower(symptom)
		for _, r := range remedies {
			if strings.Contains(lowered, r.Keyword) {
				notes = append(notes, models.RemedyNote{Symptom: symptom, Remedy: r.Remedy})
				break
			}
		}
	}
	return notes
}

// ExtractSymptoms pulls known symptom keywords out of a free-text
// description, in keyword table order.
func (s *TriageService) ExtractSymptoms(text string) []string {
	lowered := strings.ToLower(text)
	found := []string{}
	for _, keyword := range s.kb.ExtractionKeywords() {
		if strings.Contains(lowered, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}

func (s *TriageService) QuickSelectSymptoms() []string {
	return s.kb.QuickSelectSymptoms()
}

func (s *TriageService) RemedyFor(keyword string) (string, bool) {
	return s.kb.RemedyFor(keyword)
}

func (s *TriageService) FirstAidFor(topic string) (string, bool) {
	return s.kb.FirstAidFor(topic)
}

func (s *TriageService) FirstAidTopics() []string {
	return s.kb.FirstAidTopics()
}

func (s *TriageService) GeneralFirstAid() []string {
	return s.kb.GeneralFirstAid()
}
