package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"mediguard-backend/models"
)

var ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")

// validate collects every problem in doc rather than stopping at the first.
func validate(doc *document) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidKnowledgeBase}, args...)...))
	}

	seen := make(map[models.RiskTier]bool, len(models.TierOrder))
	for i, p := range doc.Tiers {
		if !p.Tier.Valid() {
			add("tiers[%d]: unknown tier %q", i, p.Tier)
			continue
		}
		if seen[p.Tier] {
			add("tier %s defined twice", p.Tier)
		}
		seen[p.Tier] = true

		if len(p.Lexicon) == 0 {
			add("tier %s: empty symptom lexicon", p.Tier)
		}
		checkPhrases(add, fmt.Sprintf("tier %s symptoms", p.Tier), p.Lexicon)

		if len(p.Conditions) == 0 {
			add("tier %s: empty condition set", p.Tier)
		}
		for j, c := range p.Conditions {
			if strings.TrimSpace(c) == "" {
				add("tier %s: conditions[%d] is blank", p.Tier, j)
			}
		}
		if p.Recommendation.Action == "" || p.Recommendation.Advice == "" {
			add("tier %s: recommendation needs action and advice", p.Tier)
		}
	}
	for _, tier := range models.TierOrder {
		if !seen[tier] {
			add("tier %s missing", tier)
		}
	}

	remedyKeywords := make([]string, 0, len(doc.Remedies))
	for i, r := range doc.Remedies {
		checkPhrases(add, fmt.Sprintf("remedies[%d] keyword", i), []string{r.Keyword})
		if r.Remedy == "" {
			add("remedy %q has no text", r.Keyword)
		}
		remedyKeywords = append(remedyKeywords, r.Keyword)
	}
	checkUnique(add, "remedies keyword", remedyKeywords)

	topics := make([]string, 0, len(doc.FirstAid))
	for i, f := range doc.FirstAid {
		checkPhrases(add, fmt.Sprintf("first_aid[%d] topic", i), []string{f.Topic})
		if f.Instruction == "" {
			add("first aid %q has no instruction", f.Topic)
		}
		topics = append(topics, f.Topic)
	}
	checkUnique(add, "first_aid topic", topics)

	checkPhrases(add, "symptom_extraction", doc.SymptomExtraction)
	checkUnique(add, "symptom_extraction", doc.SymptomExtraction)
	for i, sign := range doc.EmergencySigns {
		if strings.TrimSpace(sign) == "" {
			add("emergency_signs[%d] is blank", i)
		}
	}

	d := doc.Dialogue
	if len(d.Emergency.Keywords) == 0 || d.Emergency.Reply == "" {
		add("dialogue emergency rule needs keywords and a reply")
	}
	checkPhrases(add, "dialogue emergency keywords", d.Emergency.Keywords)
	symptomKeywords := make([]string, 0, len(d.Symptoms))
	for i, s := range d.Symptoms {
		checkPhrases(add, fmt.Sprintf("dialogue symptoms[%d] keyword", i), []string{s.Keyword})
		if s.Reply == "" {
			add("dialogue symptom %q has no reply", s.Keyword)
		}
		symptomKeywords = append(symptomKeywords, s.Keyword)
	}
	checkUnique(add, "dialogue symptoms keyword", symptomKeywords)
	for name, rule := range map[string]RandomRule{"greeting": d.Greeting, "advice": d.Advice} {
		if len(rule.Keywords) == 0 || len(rule.Replies) == 0 {
			add("dialogue %s rule needs keywords and replies", name)
		}
		checkPhrases(add, "dialogue "+name+" keywords", rule.Keywords)
	}
	// Symptom replies append a random advice line.
	if len(d.Symptoms) > 0 && len(d.Advice.Replies) == 0 {
		add("dialogue symptom replies require advice replies")
	}
	if d.DefaultReply == "" {
		add("dialogue default_reply is empty")
	}

	return errors.Join(errs...)
}

func checkPhrases(add func(string, ...any), where string, phrases []string) {
	for i, p := range phrases {
		switch {
		case strings.TrimSpace(p) == "":
			add("%s[%d] is empty", where, i)
		case p != strings.ToLower(p):
			add("%s[%d] %q is not lowercase", where, i, p)
		}
	}
}

// checkUnique reports every phrase listed more than once.
func checkUnique(add func(string, ...any), where string, phrases []string) {
	seen := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		if seen[p] {
			add("%s %q is duplicated", where, p)
		}
		seen[p] = true
	}
}
