package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/radieske/cricket-bet-platform/internal/scoring"
)

// Jogo já fechado: box scores viram imutáveis
var ErrMatchFinalized = errors.New("MATCH_FINALIZED")

// Postgres persiste box scores e resultados oficiais dos jogos
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// UpsertStat grava a linha de box score de um jogador; uma por (jogo, jogador).
// Depois do fechamento dos resultados o box score é imutável: editar um stat
// divergiria das pontuações já computadas.
func (p *Postgres) UpsertStat(ctx context.Context, st scoring.PlayerMatchStat) error {
	var finalized bool
	if err := p.db.QueryRowContext(ctx, `
		SELECT EXISTS (
		  SELECT 1 FROM match_results
		  WHERE match_id=$1 AND finalized_at IS NOT NULL
		)`, st.MatchID).Scan(&finalized); err != nil {
		return err
	}
	if finalized {
		return ErrMatchFinalized
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO player_match_stats
		  (match_id, player_id, runs, balls_faced, fours, sixes,
		   wickets, overs_bowled, runs_conceded, catches, run_outs, stumpings,
		   century, five_wicket_haul, hat_trick)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (match_id, player_id) DO UPDATE SET
		  runs             = EXCLUDED.runs,
		  balls_faced      = EXCLUDED.balls_faced,
		  fours            = EXCLUDED.fours,
		  sixes            = EXCLUDED.sixes,
		  wickets          = EXCLUDED.wickets,
		  overs_bowled     = EXCLUDED.overs_bowled,
		  runs_conceded    = EXCLUDED.runs_conceded,
		  catches          = EXCLUDED.catches,
		  run_outs         = EXCLUDED.run_outs,
		  stumpings        = EXCLUDED.stumpings,
		  century          = EXCLUDED.century,
		  five_wicket_haul = EXCLUDED.five_wicket_haul,
		  hat_trick        = EXCLUDED.hat_trick`,
		st.MatchID, st.PlayerID, st.Runs, st.BallsFaced, st.Fours, st.Sixes,
		st.Wickets, st.OversBowled, st.RunsConceded, st.Catches, st.RunOuts, st.Stumpings,
		st.Century, st.FiveWicketHaul, st.HatTrick,
	)
	return err
}

// SetManOfMatch guarda o craque do jogo como valor único por jogo:
// o índice match -> jogador substitui o antigo padrão de limpar flag
// por flag em cada linha de stats
func (p *Postgres) SetManOfMatch(ctx context.Context, matchID, playerID string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO match_results (match_id, man_of_match_player_id, version)
		VALUES ($1,$2,1)
		ON CONFLICT (match_id) DO UPDATE SET
		  man_of_match_player_id = EXCLUDED.man_of_match_player_id`,
		matchID, playerID,
	)
	return err
}

// UpsertResults fecha os resultados oficiais; refinalização incrementa a versão
func (p *Postgres) UpsertResults(ctx context.Context, matchID, winner string, totalRuns int, sideBetAnswers map[string]string, momPlayerID string, runnerPool int) (version int, err error) {
	answers, err := json.Marshal(sideBetAnswers)
	if err != nil {
		return 0, err
	}

	err = p.db.QueryRowContext(ctx, `
		INSERT INTO match_results
		  (match_id, winner, total_runs, side_bet_answers, man_of_match_player_id, runner_pool, finalized_at, version)
		VALUES ($1,$2,$3,$4,NULLIF($5,''),$6,NOW(),1)
		ON CONFLICT (match_id) DO UPDATE SET
		  winner                 = EXCLUDED.winner,
		  total_runs             = EXCLUDED.total_runs,
		  side_bet_answers       = EXCLUDED.side_bet_answers,
		  man_of_match_player_id = COALESCE(EXCLUDED.man_of_match_player_id, match_results.man_of_match_player_id),
		  runner_pool            = EXCLUDED.runner_pool,
		  finalized_at           = NOW(),
		  version                = match_results.version + 1
		RETURNING version`,
		matchID, winner, totalRuns, answers, momPlayerID, runnerPool,
	).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// LockBetsForMatch trava todas as apostas do jogo depois do fechamento
func (p *Postgres) LockBetsForMatch(ctx context.Context, matchID string) error {
	_, err := p.db.ExecContext(ctx,
		`UPDATE bets SET is_locked=true WHERE match_id=$1`, matchID)
	return err
}
