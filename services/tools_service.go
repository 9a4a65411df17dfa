package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mediguard-backend/knowledge"
	"mediguard-backend/models"
)

var (
	ErrEmptySymptom        = errors.New("symptom must not be empty")
	ErrInvalidSeverity     = errors.New("severity must be Low, Medium or High")
	ErrHeartRateOutOfRange = errors.New("heart rate out of range")
)

const (
	minRecordableBPM = 30
	maxRecordableBPM = 250

	lowRestingBPM  = 60
	highRestingBPM = 100

	// RecentSymptomLimit is how many tracker entries RecentSymptoms returns.
	RecentSymptomLimit = 5
	DefaultSeverity    = "Medium"
)

// SymptomTracker keeps per-session symptom tracker entries.
type SymptomTracker interface {
	AddTrackerEntry(ctx context.Context, entry *models.TrackerEntry) error
	RecentTrackerEntries(ctx context.Context, sessionID string, limit int) ([]models.TrackerEntry, error)
}

// HealthToolsService backs the heart rate check, the symptom tracker and
// the emergency contact list.
type HealthToolsService struct {
	kb      *knowledge.KnowledgeBase
	tracker SymptomTracker
	now     func() time.Time
}

func NewHealthToolsService(kb *knowledge.KnowledgeBase, tracker SymptomTracker, opts ...Option) *HealthToolsService {
	o := buildOptions(opts)
	return &HealthToolsService{
		kb:      kb,
		tracker: tracker,
		now:     o.now,
	}
}

func (s *HealthToolsService) CheckHeartRate(bpm int) (*models.HeartRateReading, error) {
	if bpm < minRecordableBPM || bpm > maxRecordableBPM {
		return nil, fmt.Errorf("%w: %d bpm (accepted %d-%d)", ErrHeartRateOutOfRange, bpm, minRecordableBPM, maxRecordableBPM)
	}

	reading := &models.HeartRateReading{BPM: bpm}
	switch {
	case bpm < lowRestingBPM:
		reading.Status = models.HeartRateLow
		reading.Message = "Low resting heart rate - consult doctor if symptomatic"
	case bpm > highRestingBPM:
		reading.Status = models.HeartRateHigh
		reading.Message = "High resting heart rate - consider medical advice"
	default:
		reading.Status = models.HeartRateNormal
		reading.Message = "Normal resting heart rate"
	}
	return reading, nil
}

// TrackSymptom records a symptom for today under sessionID.
func (s *HealthToolsService) TrackSymptom(ctx context.Context, sessionID, symptom, severity string) (*models.TrackerEntry, error) {
	symptom = strings.TrimSpace(symptom)
	if symptom == "" {
		return nil, ErrEmptySymptom
	}
	switch strings.TrimSpace(severity) {
	case "":
		severity = DefaultSeverity
	case "Low", "Medium", "High":
		severity = strings.TrimSpace(severity)
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidSeverity, severity)
	}

	now := s.now()
	entry := &models.TrackerEntry{
		SessionID: sessionID,
		Symptom:   symptom,
		Date:      now.Format("2006-01-02"),
		Severity:  severity,
		CreatedAt: now,
	}
	if err := s.tracker.AddTrackerEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to track symptom: %w", err)
	}
	return entry, nil
}

// RecentSymptoms returns the last RecentSymptomLimit entries, oldest first.
func (s *HealthToolsService) RecentSymptoms(ctx context.Context, sessionID string) ([]models.TrackerEntry, error) {
	entries, err := s.tracker.RecentTrackerEntries(ctx, sessionID, RecentSymptomLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load symptom history: %w", err)
	}
	return entries, nil
}

func (s *HealthToolsService) EmergencyContacts() []models.EmergencyContact {
	return s.kb.EmergencyContacts()
}

func (s *HealthToolsService) EmergencySigns() []string {
	return s.kb.EmergencySigns()
}
