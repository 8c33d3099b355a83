package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/radieske/cricket-bet-platform/internal/bets"
)

var ErrNotFound = errors.New("not found")

// Postgres implementa a persistência de apostas de jogo.
// O ID determinístico é a chave primária: reenvio vira upsert.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Upsert grava a aposta do usuário para o jogo; resubmit indica se
// havia uma aposta anterior sendo sobrescrita
func (p *Postgres) Upsert(ctx context.Context, b *bets.Bet) (resubmit bool, err error) {
	var exists bool
	if err = p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM bets WHERE id=$1)`, b.BetID).Scan(&exists); err != nil {
		return false, err
	}

	answers, err := json.Marshal(b.Answers)
	if err != nil {
		return false, err
	}
	picks, err := json.Marshal(b.PlayerPicks)
	if err != nil {
		return false, err
	}
	sideAnswers, err := json.Marshal(b.SideBetAnswers)
	if err != nil {
		return false, err
	}
	runners, err := json.Marshal(b.RunnerPicks)
	if err != nil {
		return false, err
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO bets
		  (id, user_id, match_id, answers, player_picks, side_bet_answers, runner_picks, is_locked, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,false,NOW(),NOW())
		ON CONFLICT (id) DO UPDATE SET
		  answers          = EXCLUDED.answers,
		  player_picks     = EXCLUDED.player_picks,
		  side_bet_answers = EXCLUDED.side_bet_answers,
		  runner_picks     = EXCLUDED.runner_picks,
		  updated_at       = NOW()`,
		b.BetID, b.UserID, b.MatchID, answers, picks, sideAnswers, runners,
	)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Get carrega a aposta completa, incluindo o detalhamento quando já pontuada
func (p *Postgres) Get(ctx context.Context, betID string) (*bets.Bet, error) {
	var (
		b           bets.Bet
		answers     []byte
		picks       []byte
		sideAnswers []byte
		runners     []byte
	)
	err := p.db.QueryRowContext(ctx, `
		SELECT id, user_id, match_id, answers, player_picks, side_bet_answers, runner_picks,
		       score, winner_points, total_runs_points, player_pick_points, side_bet_points, runner_points,
		       is_locked, created_at, updated_at
		FROM bets WHERE id=$1`, betID,
	).Scan(&b.BetID, &b.UserID, &b.MatchID, &answers, &picks, &sideAnswers, &runners,
		&b.Score, &b.WinnerPoints, &b.TotalRunsPoints, &b.PlayerPickPoints, &b.SideBetPoints, &b.RunnerPoints,
		&b.IsLocked, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(answers, &b.Answers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(picks, &b.PlayerPicks); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sideAnswers, &b.SideBetAnswers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(runners, &b.RunnerPicks); err != nil {
		return nil, err
	}
	return &b, nil
}
