package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RiskTier is a severity bucket. Tiers are evaluated High, then Medium,
// then Low.
type RiskTier string

const (
	TierHigh   RiskTier = "high_risk"
	TierMedium RiskTier = "medium_risk"
	TierLow    RiskTier = "low_risk"
)

// TierOrder is the evaluation order of the classifier.
var TierOrder = []RiskTier{TierHigh, TierMedium, TierLow}

// DefaultCondition is reported when no lexicon phrase matches.
const DefaultCondition = "General Discomfort"

func (t RiskTier) Valid() bool {
	switch t {
	case TierHigh, TierMedium, TierLow:
		return true
	}
	return false
}

// Label renders the tier the way the result page shows it, e.g. "High Risk".
func (t RiskTier) Label() string {
	switch t {
	case TierHigh:
		return "High Risk"
	case TierMedium:
		return "Medium Risk"
	case TierLow:
		return "Low Risk"
	}
	return string(t)
}

type Recommendation struct {
	Action string   `yaml:"action" json:"action"`
	Advice string   `yaml:"advice" json:"advice"`
	Steps  []string `yaml:"steps" json:"steps"`
}

type TierProfile struct {
	Tier           RiskTier       `yaml:"tier" json:"tier"`
	Lexicon        []string       `yaml:"symptoms" json:"symptoms"`
	Conditions     []string       `yaml:"conditions" json:"conditions"`
	Recommendation Recommendation `yaml:"recommendation" json:"recommendation"`
}

type RemedyNote struct {
	Symptom string `json:"symptom"`
	Remedy  string `json:"remedy"`
}

// Assessment is the per-request result of the risk classifier.
type Assessment struct {
	ReportedSymptoms  []string       `json:"reported_symptoms"`
	Tier              RiskTier       `json:"tier"`
	TierLabel         string         `json:"tier_label"`
	Condition         string         `json:"condition"`
	MatchedPhrase     string         `json:"matched_phrase,omitempty"`
	Recommendation    Recommendation `json:"recommendation"`
	HomeCare          []RemedyNote   `json:"home_care,omitempty"`
	EmergencyProtocol []string       `json:"emergency_protocol,omitempty"`
	AssessedAt        time.Time      `json:"assessed_at"`
}

type AssessRequest struct {
	Symptoms    []string `json:"symptoms"`
	Description string   `json:"description"`
	AgeGroup    string   `json:"age_group,omitempty"`
	Gender      string   `json:"gender,omitempty"`
}

type AssessResponse struct {
	Assessment *Assessment `json:"assessment"`
	AgeGroup   string      `json:"age_group,omitempty"`
	Gender     string      `json:"gender,omitempty"`
}

type EmergencyContact struct {
	Service string `yaml:"service" json:"service"`
	Number  string `yaml:"number" json:"number"`
}

// TrackerEntry is one symptom recorded in a session's symptom tracker.
type TrackerEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"`
	Symptom   string             `bson:"symptom" json:"symptom"`
	Date      string             `bson:"date" json:"date"`
	Severity  string             `bson:"severity" json:"severity"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"-"`
}

type TrackerRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Symptom   string `json:"symptom" binding:"required"`
	Severity  string `json:"severity,omitempty" binding:"omitempty,oneof=Low Medium High"`
}

type HeartRateStatus string

const (
	HeartRateLow    HeartRateStatus = "low"
	HeartRateNormal HeartRateStatus = "normal"
	HeartRateHigh   HeartRateStatus = "high"
)

type HeartRateReading struct {
	BPM     int             `json:"bpm"`
	Status  HeartRateStatus `json:"status"`
	Message string          `json:"message"`
}

type HeartRateRequest struct {
	BPM int `json:"bpm" binding:"required"`
}
