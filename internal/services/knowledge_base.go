package services

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// IntentGeneral is reported when no knowledge base intent matches
const IntentGeneral = "general"

//go:embed knowledge_base.yaml
var defaultKnowledgeBase []byte

var namePattern = regexp.MustCompile(`(?i)(my name is|i'm|i am|call me)\s+([a-zA-Z]+)`)

// KnowledgeBase is the ordered set of canned chatbot answers
type KnowledgeBase struct {
	Assistant    string   `yaml:"assistant"`
	SystemPrompt string   `yaml:"system_prompt"`
	Fallback     string   `yaml:"fallback"`
	Intents      []Intent `yaml:"intents"`
}

// Intent is one canned answer and the patterns that trigger it.
// Patterns are case-insensitive regular expressions.
type Intent struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
	Response string   `yaml:"response"`

	compiled []*regexp.Regexp
}

// DefaultKnowledgeBase returns the built-in knowledge base
func DefaultKnowledgeBase() *KnowledgeBase {
	kb, err := ParseKnowledgeBase(defaultKnowledgeBase)
	if err != nil {
		panic(fmt.Sprintf("embedded knowledge base is invalid: %v", err))
	}
	return kb
}

// LoadKnowledgeBase reads a YAML knowledge base from path. An empty path
// returns the built-in one.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	if path == "" {
		return DefaultKnowledgeBase(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base %s: %w", path, err)
	}
	return ParseKnowledgeBase(data)
}

// ParseKnowledgeBase decodes and compiles a YAML knowledge base
func ParseKnowledgeBase(data []byte) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}

	if strings.TrimSpace(kb.Fallback) == "" {
		return nil, fmt.Errorf("knowledge base: fallback response is required")
	}

	for i := range kb.Intents {
		intent := &kb.Intents[i]
		if intent.Name == "" || intent.Response == "" {
			return nil, fmt.Errorf("knowledge base: intent %d needs a name and a response", i)
		}
		for _, p := range intent.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("knowledge base: intent %q pattern %q: %w", intent.Name, p, err)
			}
			intent.compiled = append(intent.compiled, re)
		}
	}

	return &kb, nil
}

// DetectIntent returns the first intent, in file order, with a pattern
// matching message
func (kb *KnowledgeBase) DetectIntent(message string) (*Intent, bool) {
	for i := range kb.Intents {
		for _, re := range kb.Intents[i].compiled {
			if re.MatchString(message) {
				return &kb.Intents[i], true
			}
		}
	}
	return nil, false
}

// FallbackResponse is used when no intent matches and completion fails
func (kb *KnowledgeBase) FallbackResponse(visitorName string) string {
	return WithVisitorName(kb.Fallback, visitorName)
}

// ExtractName returns the name a visitor introduced themselves with, if any
func ExtractName(message string) (string, bool) {
	m := namePattern.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// WithVisitorName fills the first {name} placeholder with ", Name" or nothing
func WithVisitorName(template, visitorName string) string {
	tag := ""
	if visitorName != "" {
		tag = ", " + visitorName
	}
	return strings.Replace(template, "{name}", tag, 1)
}
