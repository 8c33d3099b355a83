package questions

import (
	"fmt"

	"github.com/radieske/cricket-bet-platform/internal/fixtures"
)

// Jogos de abertura recebem um pacote reduzido com pontuação fixa,
// ignorando a configuração do admin.
var earlyMatches = map[string]struct{}{
	"m01": {},
	"m02": {},
	"m03": {},
}

const (
	earlyBasePoints    = 1000
	earlyPointsWrong   = 0
	earlySideBetPoints = 500

	// Peso padrão da opção Super Over na pergunta de vencedor
	SuperOverWeight = 5.0
	superOverRef    = "SUPER_OVER"
)

// IsEarlyMatch indica se o jogo está na allow-list de abertura
func IsEarlyMatch(matchID string) bool {
	_, ok := earlyMatches[matchID]
	return ok
}

func questionID(matchID, suffix string) string {
	return fmt.Sprintf("q_%s_%s", matchID, suffix)
}

func refOptionID(matchID, playerID string) string {
	return fmt.Sprintf("opt_%s_%s", matchID, playerID)
}

// GenerateStandardPack monta as perguntas padrão (seção STANDARD) de um jogo.
// Jogos de abertura: exatamente vencedor + total de runs com esquema fixo.
// Demais jogos: vencedor, total de runs, um player pick por slot e,
// opcionalmente, runner pick.
func GenerateStandardPack(m *fixtures.Match, cfg MatchBettingConfig) []Question {
	if IsEarlyMatch(m.ID) {
		return []Question{
			winnerQuestion(m, earlyBasePoints, earlyPointsWrong),
			totalRunsQuestion(m, earlyBasePoints),
		}
	}

	cfg.Normalize()

	pack := []Question{
		winnerQuestion(m, cfg.WinnerPointsX, 0),
		totalRunsQuestion(m, cfg.TotalRunsPointsX),
	}

	squadOpts := playerOptions(m)
	for i := 0; i < cfg.PlayerPickSlots; i++ {
		mult := 1.0
		if i < len(cfg.MultiplierPreset) {
			mult = cfg.MultiplierPreset[i]
		}
		pack = append(pack, Question{
			QuestionID: questionID(m.ID, fmt.Sprintf("pick%d", i+1)),
			MatchID:    m.ID,
			Section:    SectionStandard,
			Kind:       KindPlayerPick,
			Type:       TypePlayerPick,
			Text:       fmt.Sprintf("Pick %d: choose a player to earn fantasy points", i+1),
			Slot:       &Slot{Index: i, Multiplier: mult},
			Options:    squadOpts,
		})
	}

	if cfg.RunnersEnabled {
		rc := cfg.RunnerConfig
		if rc == nil {
			rc = &RunnerConfig{MaxRunners: 3, Percent: 10}
		}
		pack = append(pack, Question{
			QuestionID:   questionID(m.ID, "runner"),
			MatchID:      m.ID,
			Section:      SectionStandard,
			Kind:         KindRunnerPick,
			Type:         TypeRunnerPick,
			Text:         fmt.Sprintf("Runners: pick up to %d players", rc.MaxRunners),
			RunnerConfig: rc,
			Options:      squadOpts,
		})
	}

	return pack
}

func winnerQuestion(m *fixtures.Match, points, pointsWrong int) Question {
	return Question{
		QuestionID:  questionID(m.ID, "winner"),
		MatchID:     m.ID,
		Section:     SectionStandard,
		Kind:        KindWinner,
		Type:        TypeTeamPick,
		Text:        fmt.Sprintf("Who wins %s vs %s?", m.TeamA.Name, m.TeamB.Name),
		Points:      points,
		PointsWrong: pointsWrong,
		Weight:      SuperOverWeight,
		Options: []Option{
			{
				OptionID:      refOptionID(m.ID, m.TeamA.ID),
				Label:         m.TeamA.Name,
				ReferenceType: RefTeam,
				ReferenceID:   m.TeamA.ID,
			},
			{
				OptionID:      refOptionID(m.ID, m.TeamB.ID),
				Label:         m.TeamB.Name,
				ReferenceType: RefTeam,
				ReferenceID:   m.TeamB.ID,
			},
			{
				OptionID:      refOptionID(m.ID, "super_over"),
				Label:         "Super Over",
				ReferenceType: RefNone,
				ReferenceID:   superOverRef,
				Weight:        SuperOverWeight,
			},
		},
	}
}

func totalRunsQuestion(m *fixtures.Match, points int) Question {
	return Question{
		QuestionID: questionID(m.ID, "runs"),
		MatchID:    m.ID,
		Section:    SectionStandard,
		Kind:       KindTotalRuns,
		Type:       TypeNumericInput,
		Text:       "Total runs scored in the match (both innings)",
		Points:     points,
	}
}

// playerOptions monta as opções a partir da união dos elencos.
// Elencos ausentes degradam para lista vazia, nunca para erro.
func playerOptions(m *fixtures.Match) []Option {
	squad := m.Squad()
	if len(squad) == 0 {
		return nil
	}
	opts := make([]Option, 0, len(squad))
	for _, p := range squad {
		opts = append(opts, Option{
			OptionID:      refOptionID(m.ID, p.ID),
			Label:         p.Name,
			ReferenceType: RefPlayer,
			ReferenceID:   p.ID,
		})
	}
	return opts
}

// ApplySideBets seleciona até count templates e materializa as side bets
// (seção SIDE) do jogo, substituindo placeholders de time.
// overridePoints[templateId] sobrescreve a pontuação default do template;
// jogos de abertura têm exatamente 1 side bet com esquema fixo,
// independente da config.
func ApplySideBets(m *fixtures.Match, lib *TemplateLibrary, count int, overridePoints map[string]int, templateIDs []string) []Question {
	// Jogo de abertura tem sempre exatamente 1 side bet, mesmo que a
	// config peça 0 ou mais de 1
	early := IsEarlyMatch(m.ID)
	if early {
		count = 1
	}

	selected := selectTemplates(lib, count, templateIDs)
	if len(selected) == 0 {
		return nil
	}

	sub := substitution{
		TeamAName: m.TeamA.Name,
		TeamBName: m.TeamB.Name,
		TeamAID:   m.TeamA.ID,
		TeamBID:   m.TeamB.ID,
	}

	out := make([]Question, 0, len(selected))
	for _, t := range selected {
		qid := questionID(m.ID, "side_"+t.TemplateID)

		points := t.DefaultPoints
		pointsWrong := t.PointsWrong
		if v, ok := overridePoints[t.TemplateID]; ok {
			points = v
		}
		if early {
			points = earlySideBetPoints
			pointsWrong = earlyPointsWrong
		}

		opts := make([]Option, 0, len(t.Options))
		for i, to := range t.Options {
			opts = append(opts, Option{
				OptionID:      fmt.Sprintf("%s_opt%d", qid, i+1),
				Label:         sub.apply(to.Label),
				ReferenceType: to.ReferenceType,
				ReferenceID:   sub.apply(to.ReferenceID),
			})
		}

		out = append(out, Question{
			QuestionID:  qid,
			MatchID:     m.ID,
			Section:     SectionSide,
			Kind:        KindSideBet,
			Type:        t.Type,
			Text:        sub.apply(t.Text),
			Points:      points,
			PointsWrong: pointsWrong,
			Options:     opts,
		})
	}
	return out
}

// selectTemplates resolve a lista de templates: IDs explícitos do admin
// quando presentes, senão os primeiros count da biblioteca
func selectTemplates(lib *TemplateLibrary, count int, templateIDs []string) []SideBetTemplate {
	if count <= 0 {
		return nil
	}

	var pool []SideBetTemplate
	if len(templateIDs) > 0 {
		for _, id := range templateIDs {
			if t, ok := lib.Template(id); ok {
				pool = append(pool, t)
			}
		}
	} else {
		pool = lib.Templates
	}

	if len(pool) > count {
		pool = pool[:count]
	}
	return pool
}
