package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediguard-backend/models"
)

func TestDefaultKnowledgeBaseLoads(t *testing.T) {
	kb, err := Default()
	require.NoError(t, err)

	for _, tier := range models.TierOrder {
		p, ok := kb.Profile(tier)
		require.True(t, ok, "profile for %s", tier)
		assert.NotEmpty(t, p.Lexicon)
		assert.NotEmpty(t, p.Conditions)
		assert.NotEmpty(t, p.Recommendation.Steps)
		for _, phrase := range p.Lexicon {
			assert.Equal(t, strings.ToLower(phrase), phrase)
		}
	}

	high, _ := kb.Profile(models.TierHigh)
	assert.Equal(t, "chest pain", high.Lexicon[0])
	assert.Equal(t, "🚨 SEEK EMERGENCY CARE IMMEDIATELY", high.Recommendation.Action)
}

func TestEmergencySigns(t *testing.T) {
	kb := MustDefault()

	signs := kb.EmergencySigns()
	require.Len(t, signs, 6)
	assert.Equal(t, "Chest pain or pressure", signs[0])
	assert.Equal(t, "Seizures", signs[5])

	signs[0] = "changed"
	assert.Equal(t, "Chest pain or pressure", kb.EmergencySigns()[0])
}

func TestRemedyFor(t *testing.T) {
	kb := MustDefault()

	remedy, ok := kb.RemedyFor("fever")
	assert.True(t, ok)
	assert.Equal(t, "Rest, drink plenty of fluids, use cool compresses, take paracetamol if needed", remedy)

	_, ok = kb.RemedyFor("unlisted-term")
	assert.False(t, ok)

	remedy, ok = kb.RemedyFor("  Sore Throat ")
	assert.True(t, ok)
	assert.Contains(t, remedy, "salt water")
}

func TestFirstAidFor(t *testing.T) {
	kb := MustDefault()

	instruction, ok := kb.FirstAidFor("Burn")
	assert.True(t, ok)
	assert.Contains(t, instruction, "running water")

	_, ok = kb.FirstAidFor("stroke")
	assert.False(t, ok)

	assert.Equal(t, []string{"bleeding", "burn", "fracture", "choking"}, kb.FirstAidTopics())
	assert.Len(t, kb.GeneralFirstAid(), 5)
}

func TestAccessorsReturnCopies(t *testing.T) {
	kb := MustDefault()

	contacts := kb.EmergencyContacts()
	contacts[0].Number = "000"
	assert.Equal(t, "112", kb.EmergencyContacts()[0].Number)

	keywords := kb.ExtractionKeywords()
	keywords[0] = "changed"
	assert.Equal(t, "fever", kb.ExtractionKeywords()[0])
}

func TestIntentPatternsKeepTableOrder(t *testing.T) {
	kb := MustDefault()
	patterns := kb.IntentPatterns()

	assert.Equal(t, []string{"hello", "hi", "hey", "start", "help"}, patterns[models.IntentGreeting])
	assert.Equal(t, "fever", patterns[models.IntentSymptomSpecific][0])
	assert.Contains(t, patterns[models.IntentEmergency], "can't breathe")
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		message string
	}{
		{
			name: "uppercase lexicon phrase",
			mutate: func(doc string) string {
				return strings.Replace(doc, "- chest pain\n", "- Chest Pain\n", 1)
			},
			message: "not lowercase",
		},
		{
			name: "empty condition set",
			mutate: func(doc string) string {
				return strings.Replace(doc, `    conditions:
      - Heart Attack
      - Stroke
      - Severe Trauma
      - Pulmonary Embolism
      - Cardiac Arrest
`, "    conditions: []\n", 1)
			},
			message: "empty condition set",
		},
		{
			name: "unknown tier",
			mutate: func(doc string) string {
				return strings.Replace(doc, "tier: medium_risk", "tier: moderate", 1)
			},
			message: "unknown tier",
		},
		{
			name: "duplicate dialogue symptom keyword",
			mutate: func(doc string) string {
				return strings.Replace(doc, "    - keyword: tired\n", "    - keyword: fever\n", 1)
			},
			message: `dialogue symptoms keyword "fever" is duplicated`,
		},
		{
			name: "duplicate remedy keyword",
			mutate: func(doc string) string {
				return strings.Replace(doc, "  - keyword: rash\n    remedy:", "  - keyword: cough\n    remedy:", 1)
			},
			message: `remedies keyword "cough" is duplicated`,
		},
		{
			name: "duplicate first aid topic",
			mutate: func(doc string) string {
				return strings.Replace(doc, "  - topic: choking\n", "  - topic: burn\n", 1)
			},
			message: `first_aid topic "burn" is duplicated`,
		},
		{
			name: "missing default reply",
			mutate: func(doc string) string {
				i := strings.Index(doc, "  default_reply:")
				return doc[:i]
			},
			message: "default_reply is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(string(defaultDocument))))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidKnowledgeBase))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("tiers: [unterminated"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(path, defaultDocument, 0o600))

	kb, err := Load(path)
	require.NoError(t, err)
	_, ok := kb.RemedyFor("cough")
	assert.True(t, ok)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
