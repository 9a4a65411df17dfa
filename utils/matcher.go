package utils

import "strings"

// Matches reports whether phrase occurs anywhere in the inputs joined by a
// single space. Callers lowercase both sides. Matching is plain substring
// containment, so "pain" fires on "painful" and a multi-word phrase can
// span two adjacent inputs.
func Matches(phrase string, inputs []string) bool {
	return strings.Contains(strings.Join(inputs, " "), phrase)
}

// FirstMatch returns the first phrase of lexicon, in lexicon order, that
// Matches the inputs.
func FirstMatch(lexicon []string, inputs []string) (string, bool) {
	space := strings.Join(inputs, " ")
	for _, phrase := range lexicon {
		if strings.Contains(space, phrase) {
			return phrase, true
		}
	}
	return "", false
}

// ContainsAny is FirstMatch for a single message.
func ContainsAny(message string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return keyword, true
		}
	}
	return "", false
}

// LowerAll returns a lowercased copy of inputs.
func LowerAll(inputs []string) []string {
	lowered := make([]string, len(inputs))
	for i, s := range inputs {
		lowered[i] = strings.ToLower(s)
	}
	return lowered
}
