package questions

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Document é o formato do bootstrap de perguntas e configurações por jogo
type Document struct {
	QuestionsByMatch map[string][]Question           `json:"questionsByMatch"`
	ConfigsByMatch   map[string]MatchBettingConfig   `json:"configsByMatch"`
}

// Store guarda perguntas e configuração por jogo em memória.
// Escrita única pelo tooling de admin; leituras concorrentes são seguras.
type Store struct {
	mu        sync.RWMutex
	questions map[string][]Question
	configs   map[string]MatchBettingConfig
}

func NewStore() *Store {
	return &Store{
		questions: make(map[string][]Question),
		configs:   make(map[string]MatchBettingConfig),
	}
}

// LoadStore cria o store a partir do documento de bootstrap em disco
func LoadStore(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions doc: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode questions doc: %w", err)
	}

	s := NewStore()
	s.LoadDocument(doc)
	return s, nil
}

// LoadDocument substitui todo o conteúdo do store pelo documento
func (s *Store) LoadDocument(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = make(map[string][]Question, len(doc.QuestionsByMatch))
	for matchID, qs := range doc.QuestionsByMatch {
		s.questions[matchID] = append([]Question(nil), qs...)
	}
	s.configs = make(map[string]MatchBettingConfig, len(doc.ConfigsByMatch))
	for matchID, cfg := range doc.ConfigsByMatch {
		cfg.Normalize()
		s.configs[matchID] = cfg
	}
}

// SaveQuestionsBySection substitui apenas as perguntas da seção informada,
// preservando a outra seção intacta. Permite regenerar standard e side
// bets de forma independente sem sobrescrever uma à outra.
func (s *Store) SaveQuestionsBySection(matchID string, section Section, qs []Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []Question
	for _, q := range s.questions[matchID] {
		if q.Section != section {
			kept = append(kept, q)
		}
	}
	kept = append(kept, qs...)
	s.questions[matchID] = kept
}

// SaveMatchConfig sobrescreve a configuração do jogo (last-write-wins)
func (s *Store) SaveMatchConfig(matchID string, cfg MatchBettingConfig) {
	cfg.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[matchID] = cfg
}

// Questions devolve uma cópia das perguntas do jogo
func (s *Store) Questions(matchID string) []Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Question(nil), s.questions[matchID]...)
}

// QuestionsBySection devolve uma cópia das perguntas de uma seção
func (s *Store) QuestionsBySection(matchID string, section Section) []Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Question
	for _, q := range s.questions[matchID] {
		if q.Section == section {
			out = append(out, q)
		}
	}
	return out
}

// Config devolve a configuração do jogo, se existir
func (s *Store) Config(matchID string) (MatchBettingConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[matchID]
	return cfg, ok
}

// Reset limpa todo o estado. Suporte de teste apenas.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = make(map[string][]Question)
	s.configs = make(map[string]MatchBettingConfig)
}
