package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mediguard-backend/models"
)

func testPatterns() map[models.MessageIntent][]string {
	return map[models.MessageIntent][]string{
		models.IntentEmergency:       {"heart attack", "chest pain", "can't breathe"},
		models.IntentSymptomSpecific: {"fever", "cough"},
		models.IntentGreeting:        {"hello", "hi", "help"},
		models.IntentGeneralAdvice:   {"advice", "tip"},
	}
}

func TestClassifyIntentPriority(t *testing.T) {
	ic := NewIntentClassifier(testPatterns())

	tests := []struct {
		message string
		intent  models.MessageIntent
		keyword string
	}{
		{"I think I'm having a heart attack", models.IntentEmergency, "heart attack"},
		{"Hello, I have chest pain and a fever", models.IntentEmergency, "chest pain"},
		{"hi, I have a FEVER", models.IntentSymptomSpecific, "fever"},
		{"hello, can you help me", models.IntentGreeting, "hello"},
		{"any advice?", models.IntentGeneralAdvice, "advice"},
		{"what is the capital of France", models.IntentUnknown, ""},
		{"", models.IntentUnknown, ""},
		{"   ", models.IntentUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			intent, keyword := ic.ClassifyIntent(tt.message)
			assert.Equal(t, tt.intent, intent)
			assert.Equal(t, tt.keyword, keyword)
		})
	}
}

func TestIntentClassifierCopiesPatterns(t *testing.T) {
	patterns := testPatterns()
	ic := NewIntentClassifier(patterns)
	patterns[models.IntentGreeting][0] = "changed"

	assert.Equal(t, "hello", ic.Keywords(models.IntentGreeting)[0])
}
