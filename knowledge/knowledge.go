// Package knowledge holds the read-only triage and dialogue tables.
//
// The tables are decoded from a YAML document once at startup and
// validated before use. A KnowledgeBase has no mutation methods; slices
// returned by accessors are copies unless noted otherwise.
package knowledge

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mediguard-backend/models"
)

//go:embed knowledge.yaml
var defaultDocument []byte

type Remedy struct {
	Keyword string `yaml:"keyword"`
	Remedy  string `yaml:"remedy"`
}

type FirstAid struct {
	Topic       string `yaml:"topic"`
	Instruction string `yaml:"instruction"`
}

type SymptomReply struct {
	Keyword string `yaml:"keyword"`
	Reply   string `yaml:"reply"`
}

type FixedRule struct {
	Keywords []string `yaml:"keywords"`
	Reply    string   `yaml:"reply"`
	Call     []string `yaml:"call"`
}

type RandomRule struct {
	Keywords []string `yaml:"keywords"`
	Replies  []string `yaml:"replies"`
}

type Dialogue struct {
	Emergency    FixedRule      `yaml:"emergency"`
	Symptoms     []SymptomReply `yaml:"symptoms"`
	Greeting     RandomRule     `yaml:"greeting"`
	Advice       RandomRule     `yaml:"advice"`
	DefaultReply string         `yaml:"default_reply"`
}

// document mirrors knowledge.yaml.
type document struct {
	Tiers               []models.TierProfile      `yaml:"tiers"`
	EmergencyProtocol   []string                  `yaml:"emergency_protocol"`
	Remedies            []Remedy                  `yaml:"remedies"`
	FirstAid            []FirstAid                `yaml:"first_aid"`
	GeneralFirstAid     []string                  `yaml:"general_first_aid"`
	EmergencyContacts   []models.EmergencyContact `yaml:"emergency_contacts"`
	EmergencySigns      []string                  `yaml:"emergency_signs"`
	SymptomExtraction   []string                  `yaml:"symptom_extraction"`
	QuickSelectSymptoms []string                  `yaml:"quick_select_symptoms"`
	Dialogue            Dialogue                  `yaml:"dialogue"`
}

type KnowledgeBase struct {
	profiles map[models.RiskTier]models.TierProfile
	doc      document
	remedies map[string]string
	firstAid map[string]string
}

// Default returns the knowledge base compiled into the binary.
func Default() (*KnowledgeBase, error) {
	return Parse(defaultDocument)
}

// MustDefault is Default for callers that cannot proceed without tables,
// such as tests and package-level wiring.
func MustDefault() *KnowledgeBase {
	kb, err := Default()
	if err != nil {
		panic(err)
	}
	return kb
}

// Load reads the document at path, or the embedded default when path is
// empty.
func Load(path string) (*KnowledgeBase, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a knowledge base document.
func Parse(data []byte) (*KnowledgeBase, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKnowledgeBase, err)
	}
	if err := validate(&doc); err != nil {
		return nil, err
	}

	kb := &KnowledgeBase{
		profiles: make(map[models.RiskTier]models.TierProfile, len(doc.Tiers)),
		doc:      doc,
		remedies: make(map[string]string, len(doc.Remedies)),
		firstAid: make(map[string]string, len(doc.FirstAid)),
	}
	for _, p := range doc.Tiers {
		kb.profiles[p.Tier] = p
	}
	for _, r := range doc.Remedies {
		kb.remedies[r.Keyword] = r.Remedy
	}
	for _, f := range doc.FirstAid {
		kb.firstAid[f.Topic] = f.Instruction
	}
	return kb, nil
}

// Profile returns the tier's profile. The Recommendation inside shares its
// step list with the knowledge base; callers must treat it as read-only.
func (kb *KnowledgeBase) Profile(tier models.RiskTier) (models.TierProfile, bool) {
	p, ok := kb.profiles[tier]
	return p, ok
}

// RemedyFor looks up a remedy by exact complaint keyword.
func (kb *KnowledgeBase) RemedyFor(keyword string) (string, bool) {
	r, ok := kb.remedies[strings.ToLower(strings.TrimSpace(keyword))]
	return r, ok
}

// Remedies returns the remedy table in document order.
func (kb *KnowledgeBase) Remedies() []Remedy {
	return append([]Remedy(nil), kb.doc.Remedies...)
}

// FirstAidFor looks up first-aid instructions by exact topic.
func (kb *KnowledgeBase) FirstAidFor(topic string) (string, bool) {
	f, ok := kb.firstAid[strings.ToLower(strings.TrimSpace(topic))]
	return f, ok
}

func (kb *KnowledgeBase) FirstAidTopics() []string {
	topics := make([]string, len(kb.doc.FirstAid))
	for i, f := range kb.doc.FirstAid {
		topics[i] = f.Topic
	}
	return topics
}

func (kb *KnowledgeBase) GeneralFirstAid() []string {
	return append([]string(nil), kb.doc.GeneralFirstAid...)
}

func (kb *KnowledgeBase) EmergencyProtocol() []string {
	return append([]string(nil), kb.doc.EmergencyProtocol...)
}

func (kb *KnowledgeBase) EmergencyContacts() []models.EmergencyContact {
	return append([]models.EmergencyContact(nil), kb.doc.EmergencyContacts...)
}

// EmergencySigns lists the warning signs that call for immediate help.
func (kb *KnowledgeBase) EmergencySigns() []string {
	return append([]string(nil), kb.doc.EmergencySigns...)
}

func (kb *KnowledgeBase) ExtractionKeywords() []string {
	return append([]string(nil), kb.doc.SymptomExtraction...)
}

func (kb *KnowledgeBase) QuickSelectSymptoms() []string {
	return append([]string(nil), kb.doc.QuickSelectSymptoms...)
}

// Dialogue returns the chat tables. The returned value shares slices with
// the knowledge base.
func (kb *KnowledgeBase) Dialogue() Dialogue {
	return kb.doc.Dialogue
}

// IntentPatterns flattens the dialogue rules into the keyword lists used by
// the intent classifier. Symptom keywords keep table order.
func (kb *KnowledgeBase) IntentPatterns() map[models.MessageIntent][]string {
	d := kb.doc.Dialogue
	symptoms := make([]string, len(d.Symptoms))
	for i, s := range d.Symptoms {
		symptoms[i] = s.Keyword
	}
	return map[models.MessageIntent][]string{
		models.IntentEmergency:       d.Emergency.Keywords,
		models.IntentSymptomSpecific: symptoms,
		models.IntentGreeting:        d.Greeting.Keywords,
		models.IntentGeneralAdvice:   d.Advice.Keywords,
	}
}
