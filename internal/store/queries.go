package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/leighmacdonald/gridiron-tui/internal/csvrows"
	"github.com/leighmacdonald/gridiron-tui/internal/play"
)

var (
	errQuery  = errors.New("failed to query rows")
	errInsert = errors.New("failed to insert row")
	errImport = errors.New("failed to import dataset")
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const insertPlay = `INSERT INTO plays (week, posteam, defteam, play_type, yardline_100, description)
VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertPlay(ctx context.Context, record csvrows.Record) error {
	if _, err := q.db.ExecContext(ctx, insertPlay,
		record.Get(play.ColWeek),
		record.Get(play.ColPosTeam),
		record.Get(play.ColDefTeam),
		record.Get(play.ColPlayType),
		record.Get(play.ColYardLine),
		record.Get(play.ColDesc),
	); err != nil {
		return errors.Join(err, errInsert)
	}

	return nil
}

const insertTeam = `INSERT INTO teams (team_abbr, team_name, team_color, team_logo_wikipedia, team_logo_espn)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (team_abbr) DO UPDATE SET team_name = excluded.team_name,
                                      team_color = excluded.team_color,
                                      team_logo_wikipedia = excluded.team_logo_wikipedia,
                                      team_logo_espn = excluded.team_logo_espn`

func (q *Queries) InsertTeam(ctx context.Context, record csvrows.Record) error {
	if _, err := q.db.ExecContext(ctx, insertTeam,
		record.Get(play.ColTeamAbbr),
		record.Get(play.ColTeamName),
		record.Get(play.ColTeamColor),
		record.Get(play.ColTeamLogoWikipedia),
		record.Get(play.ColTeamLogoESPN),
	); err != nil {
		return errors.Join(err, errInsert)
	}

	return nil
}

func (q *Queries) DeleteAll(ctx context.Context) error {
	for _, query := range []string{"DELETE FROM plays", "DELETE FROM teams"} {
		if _, err := q.db.ExecContext(ctx, query); err != nil {
			return errors.Join(err, errInsert)
		}
	}

	return nil
}

const listPlays = `SELECT week, posteam, defteam, play_type, yardline_100, description FROM plays ORDER BY play_id`

// Plays returns the stored plays as records keyed by their original CSV column names.
func (q *Queries) Plays(ctx context.Context) ([]csvrows.Record, error) {
	rows, err := q.db.QueryContext(ctx, listPlays)
	if err != nil {
		return nil, errors.Join(err, errQuery)
	}
	defer rows.Close()

	var records []csvrows.Record
	for rows.Next() {
		var week, posTeam, defTeam, playType, yardLine, desc string
		if errScan := rows.Scan(&week, &posTeam, &defTeam, &playType, &yardLine, &desc); errScan != nil {
			return nil, errors.Join(errScan, errQuery)
		}

		records = append(records, csvrows.Record{
			play.ColWeek:     week,
			play.ColPosTeam:  posTeam,
			play.ColDefTeam:  defTeam,
			play.ColPlayType: playType,
			play.ColYardLine: yardLine,
			play.ColDesc:     desc,
		})
	}

	if errRows := rows.Err(); errRows != nil {
		return nil, errors.Join(errRows, errQuery)
	}

	return records, nil
}

const listTeams = `SELECT team_abbr, team_name, team_color, team_logo_wikipedia, team_logo_espn FROM teams ORDER BY team_id`

func (q *Queries) Teams(ctx context.Context) ([]csvrows.Record, error) {
	rows, err := q.db.QueryContext(ctx, listTeams)
	if err != nil {
		return nil, errors.Join(err, errQuery)
	}
	defer rows.Close()

	var records []csvrows.Record
	for rows.Next() {
		var abbr, name, color, wikipedia, espn string
		if errScan := rows.Scan(&abbr, &name, &color, &wikipedia, &espn); errScan != nil {
			return nil, errors.Join(errScan, errQuery)
		}

		records = append(records, csvrows.Record{
			play.ColTeamAbbr:          abbr,
			play.ColTeamName:          name,
			play.ColTeamColor:         color,
			play.ColTeamLogoWikipedia: wikipedia,
			play.ColTeamLogoESPN:      espn,
		})
	}

	if errRows := rows.Err(); errRows != nil {
		return nil, errors.Join(errRows, errQuery)
	}

	return records, nil
}

// Import replaces the stored plays and teams in a single transaction. Team rows without an
// abbreviation are skipped.
func Import(ctx context.Context, conn *sql.DB, plays []csvrows.Record, teams []csvrows.Record) error {
	tx, errTx := conn.BeginTx(ctx, nil)
	if errTx != nil {
		return errors.Join(errTx, errImport)
	}

	if err := importTx(ctx, New(conn).WithTx(tx), plays, teams); err != nil {
		if errRollback := tx.Rollback(); errRollback != nil {
			return errors.Join(err, errRollback, errImport)
		}

		return errors.Join(err, errImport)
	}

	if err := tx.Commit(); err != nil {
		return errors.Join(err, errImport)
	}

	return nil
}

func importTx(ctx context.Context, queries *Queries, plays []csvrows.Record, teams []csvrows.Record) error {
	if err := queries.DeleteAll(ctx); err != nil {
		return err
	}

	for _, record := range plays {
		if err := queries.InsertPlay(ctx, record); err != nil {
			return err
		}
	}

	for _, record := range teams {
		if record.Get(play.ColTeamAbbr) == "" {
			continue
		}

		if err := queries.InsertTeam(ctx, record); err != nil {
			return err
		}
	}

	return nil
}
