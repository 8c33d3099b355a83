package questions

// Section separa o pacote padrão das side bets de um jogo
type Section string

const (
	SectionStandard Section = "STANDARD"
	SectionSide     Section = "SIDE"
)

// Kind identifica a regra de pontuação aplicada à pergunta
type Kind string

const (
	KindWinner     Kind = "WINNER"
	KindTotalRuns  Kind = "TOTAL_RUNS"
	KindPlayerPick Kind = "PLAYER_PICK"
	KindRunnerPick Kind = "RUNNER_PICK"
	KindSideBet    Kind = "SIDE_BET"
)

// Type identifica o widget de resposta esperado do usuário
type Type string

const (
	TypeTeamPick     Type = "TEAM_PICK"
	TypeNumericInput Type = "NUMERIC_INPUT"
	TypePlayerPick   Type = "PLAYER_PICK"
	TypeRunnerPick   Type = "RUNNER_PICK"
	TypeYesNo        Type = "YES_NO"
	TypeMultiChoice  Type = "MULTI_CHOICE"
)

// ReferenceType de uma opção
const (
	RefTeam   = "TEAM"
	RefPlayer = "PLAYER"
	RefNone   = "NONE"
)

type Option struct {
	OptionID      string  `json:"optionId"`
	Label         string  `json:"label"`
	ReferenceType string  `json:"referenceType"` // TEAM | PLAYER | NONE
	ReferenceID   string  `json:"referenceId,omitempty"`
	Weight        float64 `json:"weight,omitempty"` // multiplicador, ex: 5x para Super Over
}

// Slot amarra uma pergunta de player pick à sua posição e multiplicador
type Slot struct {
	Index      int     `json:"index"`
	Multiplier float64 `json:"multiplier"`
}

type RunnerConfig struct {
	MaxRunners int     `json:"maxRunners"`
	Percent    float64 `json:"percent"` // percentual do pool (0-100)
}

// Question é uma proposição apostável de um jogo
type Question struct {
	QuestionID   string        `json:"questionId"`
	MatchID      string        `json:"matchId"`
	Section      Section       `json:"section"`
	Kind         Kind          `json:"kind"`
	Type         Type          `json:"type"`
	Text         string        `json:"text"`
	Points       int           `json:"points"`                 // pontos base por acerto
	PointsWrong  int           `json:"pointsWrong"`            // default 0, pode ser negativo
	Options      []Option      `json:"options,omitempty"`      // vazio só para NUMERIC_INPUT
	Slot         *Slot         `json:"slot,omitempty"`         // presente em PLAYER_PICK
	Weight       float64       `json:"weight,omitempty"`       // multiplicador super over
	RunnerConfig *RunnerConfig `json:"runnerConfig,omitempty"` // presente em RUNNER_PICK
	Disabled     bool          `json:"disabled,omitempty"`
}

// Option busca uma opção pelo ID
func (q *Question) Option(optionID string) (Option, bool) {
	for _, o := range q.Options {
		if o.OptionID == optionID {
			return o, true
		}
	}
	return Option{}, false
}

// MatchBettingConfig são os knobs de admin que dirigem a geração do pacote
type MatchBettingConfig struct {
	WinnerPointsX        int           `json:"winnerPointsX"`
	TotalRunsPointsX     int           `json:"totalRunsPointsX"`
	PlayerPickSlots      int           `json:"playerPickSlots"`
	MultiplierPreset     []float64     `json:"multiplierPreset"`
	RunnersEnabled       bool          `json:"runnersEnabled"`
	RunnerConfig         *RunnerConfig `json:"runnerConfig,omitempty"`
	SideBetCount         int           `json:"sideBetCount"`
	SideBetPointsDefault int           `json:"sideBetPointsDefault"`
	SideBetTemplateIDs   []string      `json:"sideBetTemplateIds,omitempty"`
}

// Normalize garante a invariante multiplierPreset.length >= playerPickSlots,
// completando com 1s quando o preset vier curto
func (c *MatchBettingConfig) Normalize() {
	for len(c.MultiplierPreset) < c.PlayerPickSlots {
		c.MultiplierPreset = append(c.MultiplierPreset, 1)
	}
}
