package fixtures

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Status do jogo no ciclo de apostas
const (
	StatusOpen   = "OPEN"
	StatusLocked = "LOCKED"
	StatusScored = "SCORED"
)

type Team struct {
	ID   string `json:"id"`   // código curto, ex: "MI"
	Name string `json:"name"` // ex: "Mumbai Indians"
}

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TeamID string `json:"teamId"`
}

// Match é um jogo do calendário com elencos e horário de trava de apostas
type Match struct {
	ID      string    `json:"id"`
	TeamA   Team      `json:"teamA"`
	TeamB   Team      `json:"teamB"`
	StartAt time.Time `json:"startAt"`
	LockAt  time.Time `json:"lockAt"`
	Status  string    `json:"status"`
	SquadA  []Player  `json:"squadA"`
	SquadB  []Player  `json:"squadB"`
}

// Squad retorna a união dos elencos dos dois times, na ordem A depois B
func (m *Match) Squad() []Player {
	out := make([]Player, 0, len(m.SquadA)+len(m.SquadB))
	out = append(out, m.SquadA...)
	out = append(out, m.SquadB...)
	return out
}

// IsLocked indica se o jogo já não aceita mais apostas
func (m *Match) IsLocked(now time.Time) bool {
	return m.Status != StatusOpen || !now.Before(m.LockAt)
}

// Document é o formato do arquivo de bootstrap de jogos
type Document struct {
	Matches []Match `json:"matches"`
}

// Library indexa os jogos carregados do documento de bootstrap
type Library struct {
	byID  map[string]*Match
	order []string
}

// Load lê e indexa o documento de jogos
func Load(path string) (*Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	return NewLibrary(doc), nil
}

// NewLibrary monta a biblioteca em memória a partir de um documento já decodificado
func NewLibrary(doc Document) *Library {
	lib := &Library{byID: make(map[string]*Match, len(doc.Matches))}
	for i := range doc.Matches {
		m := doc.Matches[i]
		lib.byID[m.ID] = &m
		lib.order = append(lib.order, m.ID)
	}
	return lib
}

// Match busca um jogo por ID
func (l *Library) Match(id string) (*Match, bool) {
	m, ok := l.byID[id]
	return m, ok
}

// Matches devolve os jogos na ordem do documento
func (l *Library) Matches() []*Match {
	out := make([]*Match, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}
