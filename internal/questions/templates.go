package questions

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// TemplateOption é uma opção de side bet antes da substituição de placeholders
type TemplateOption struct {
	Label         string `json:"label"`
	ReferenceType string `json:"referenceType"`
	ReferenceID   string `json:"referenceId,omitempty"`
}

// SideBetTemplate é uma proposição parametrizada por jogo.
// Texto, labels e referenceIds aceitam os placeholders
// {{teamA}}, {{teamB}}, {{teamAId}} e {{teamBId}}.
type SideBetTemplate struct {
	TemplateID    string           `json:"templateId"`
	Text          string           `json:"text"`
	Type          Type             `json:"type"`
	DefaultPoints int              `json:"defaultPoints"`
	PointsWrong   int              `json:"pointsWrong,omitempty"`
	Options       []TemplateOption `json:"options"`
	Tags          []string         `json:"tags,omitempty"`
}

// TemplateLibrary é o documento estático de templates de side bet
type TemplateLibrary struct {
	Templates []SideBetTemplate `json:"templates"`
}

// LoadTemplates lê a biblioteca de templates do disco
func LoadTemplates(path string) (*TemplateLibrary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read side bet templates: %w", err)
	}

	var lib TemplateLibrary
	if err := json.Unmarshal(raw, &lib); err != nil {
		return nil, fmt.Errorf("decode side bet templates: %w", err)
	}
	return &lib, nil
}

// Template busca um template pelo ID
func (l *TemplateLibrary) Template(id string) (SideBetTemplate, bool) {
	for _, t := range l.Templates {
		if t.TemplateID == id {
			return t, true
		}
	}
	return SideBetTemplate{}, false
}

// substitution troca os placeholders de time pelo jogo concreto
type substitution struct {
	TeamAName string
	TeamBName string
	TeamAID   string
	TeamBID   string
}

func (s substitution) apply(text string) string {
	r := strings.NewReplacer(
		"{{teamA}}", s.TeamAName,
		"{{teamB}}", s.TeamBName,
		"{{teamAId}}", s.TeamAID,
		"{{teamBId}}", s.TeamBID,
	)
	return r.Replace(text)
}
