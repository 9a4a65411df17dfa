package utils

import (
	"strings"

	"mediguard-backend/models"
)

// IntentClassifier decides which intent rule a chat message triggers.
// Rules are tried in models.IntentPriority order and the first rule with a
// contained keyword wins; there is no scoring.
type IntentClassifier struct {
	patterns map[models.MessageIntent][]string
}

// NewIntentClassifier copies the keyword lists so later changes to the
// caller's slices are not observed.
func NewIntentClassifier(patterns map[models.MessageIntent][]string) *IntentClassifier {
	copied := make(map[models.MessageIntent][]string, len(patterns))
	for intent, keywords := range patterns {
		copied[intent] = append([]string(nil), keywords...)
	}
	return &IntentClassifier{patterns: copied}
}

// ClassifyIntent returns the winning intent and the keyword that fired.
// The keyword is empty for IntentUnknown.
func (ic *IntentClassifier) ClassifyIntent(message string) (models.MessageIntent, string) {
	message = strings.ToLower(message)
	if strings.TrimSpace(message) == "" {
		return models.IntentUnknown, ""
	}

	for _, intent := range models.IntentPriority {
		if intent == models.IntentUnknown {
			break
		}
		if keyword, ok := ContainsAny(message, ic.patterns[intent]); ok {
			return intent, keyword
		}
	}

	return models.IntentUnknown, ""
}

// Keywords returns a copy of the keywords registered for intent.
func (ic *IntentClassifier) Keywords(intent models.MessageIntent) []string {
	return append([]string(nil), ic.patterns[intent]...)
}
