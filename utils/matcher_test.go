package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		inputs []string
		want   bool
	}{
		{"exact phrase", "chest pain", []string{"chest pain"}, true},
		{"substring of longer word", "pain", []string{"this is painful"}, true},
		{"phrase spans adjacent inputs", "shortness of breath", []string{"shortness", "of breath"}, true},
		{"no match", "cough", []string{"headache", "fever"}, false},
		{"empty inputs", "cough", nil, false},
		{"no case folding inside matcher", "cough", []string{"COUGH"}, false},
		{"punctuation is not stripped", "chest pain", []string{"chest-pain"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.phrase, tt.inputs))
		})
	}
}

func TestFirstMatchUsesLexiconOrder(t *testing.T) {
	phrase, ok := FirstMatch([]string{"cough", "headache"}, []string{"headache", "cough"})
	assert.True(t, ok)
	assert.Equal(t, "cough", phrase)

	_, ok = FirstMatch([]string{"rash"}, []string{"headache"})
	assert.False(t, ok)
}

func TestContainsAny(t *testing.T) {
	keyword, ok := ContainsAny("hello, can you help me", []string{"hi", "help", "hello"})
	assert.True(t, ok)
	assert.Equal(t, "help", keyword)

	_, ok = ContainsAny("", []string{"hi"})
	assert.False(t, ok)
}

func TestLowerAll(t *testing.T) {
	in := []string{"Chest Pain", "COUGH"}
	out := LowerAll(in)

	assert.Equal(t, []string{"chest pain", "cough"}, out)
	assert.Equal(t, "Chest Pain", in[0])
}
