package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/radieske/cricket-bet-platform/internal/bets"
	"github.com/radieske/cricket-bet-platform/internal/longterm"
	"github.com/radieske/cricket-bet-platform/internal/scoring"
)

// Postgres é o acesso de leitura/escrita do scoring-worker
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// ListBetsByMatch carrega todas as apostas do jogo para pontuação
func (p *Postgres) ListBetsByMatch(ctx context.Context, matchID string) ([]*bets.Bet, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, match_id, answers, player_picks, side_bet_answers, runner_picks
		FROM bets WHERE match_id=$1`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*bets.Bet
	for rows.Next() {
		var (
			b           bets.Bet
			answers     []byte
			picks       []byte
			sideAnswers []byte
			runners     []byte
		)
		if err := rows.Scan(&b.BetID, &b.UserID, &b.MatchID, &answers, &picks, &sideAnswers, &runners); err != nil {
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
		out = append(out, &b)
	}
	return out, rows.Err()
}

// SaveBetScore grava o detalhamento por categoria e congela a aposta
func (p *Postgres) SaveBetScore(ctx context.Context, betID string, bd scoring.Breakdown) error {
	_, err := p.db.ExecContext(ctx, `
		UPDATE bets SET
		  score              = $1,
		  winner_points      = $2,
		  total_runs_points  = $3,
		  player_pick_points = $4,
		  side_bet_points    = $5,
		  runner_points      = $6,
		  is_locked          = true,
		  updated_at         = NOW()
		WHERE id=$7`,
		bd.Score, bd.WinnerPoints, bd.TotalRunsPoints, bd.PlayerPickPoints, bd.SideBetPoints, bd.RunnerPoints, betID,
	)
	return err
}

// StatsByMatch carrega o box score completo do jogo, indexado por jogador
func (p *Postgres) StatsByMatch(ctx context.Context, matchID string) (map[string]scoring.PlayerMatchStat, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT match_id, player_id, runs, balls_faced, fours, sixes,
		       wickets, overs_bowled, runs_conceded, catches, run_outs, stumpings,
		       century, five_wicket_haul, hat_trick
		FROM player_match_stats WHERE match_id=$1`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]scoring.PlayerMatchStat)
	for rows.Next() {
		var st scoring.PlayerMatchStat
		if err := rows.Scan(&st.MatchID, &st.PlayerID, &st.Runs, &st.BallsFaced, &st.Fours, &st.Sixes,
			&st.Wickets, &st.OversBowled, &st.RunsConceded, &st.Catches, &st.RunOuts, &st.Stumpings,
			&st.Century, &st.FiveWicketHaul, &st.HatTrick); err != nil {
			return nil, err
		}
		out[st.PlayerID] = st
	}
	return out, rows.Err()
}

// ListSubmissions carrega todas as submissões de longo prazo do evento
func (p *Postgres) ListSubmissions(ctx context.Context, eventID string) ([]*longterm.Submission, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT event_id, user_id, answers, submitted_at, original_submitted_at, is_locked, edit_count, score
		FROM longterm_submissions WHERE event_id=$1`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*longterm.Submission
	for rows.Next() {
		var (
			sub longterm.Submission
			raw []byte
		)
		if err := rows.Scan(&sub.EventID, &sub.UserID, &raw, &sub.SubmittedAt, &sub.OriginalSubmittedAt, &sub.IsLocked, &sub.EditCount, &sub.Score); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &sub.Answers); err != nil {
			return nil, err
		}
		out = append(out, &sub)
	}
	return out, rows.Err()
}

// SaveSubmissionScore grava os pontos apurados de uma submissão
func (p *Postgres) SaveSubmissionScore(ctx context.Context, eventID, userID string, score int) error {
	_, err := p.db.ExecContext(ctx, `
		UPDATE longterm_submissions SET score=$1, is_locked=true
		WHERE event_id=$2 AND user_id=$3`,
		score, eventID, userID)
	return err
}
