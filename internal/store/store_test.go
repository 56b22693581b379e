package store_test

import (
	"path"
	"testing"

	"github.com/leighmacdonald/gridiron-tui/internal/csvrows"
	"github.com/leighmacdonald/gridiron-tui/internal/store"
	"github.com/stretchr/testify/require"
)

const (
	playsCSV = `week,posteam,defteam,play_type,yardline_100,desc
1,BUF,NYJ,kickoff,35,"Kick, 65 yards"
1,NYJ,BUF,run,75,B.Hall up the middle
2,BUF,MIA,pass,60,J.Allen deep right
`
	teamsCSV = `team_abbr,team_name,team_color,team_logo_wikipedia,team_logo_espn
BUF,Buffalo Bills,#00338D,https://upload.wikimedia.org/buf.svg,
NYJ,New York Jets,#125740,,https://a.espncdn.com/nyj.png
,Nobody,,,
`
)

func TestImportLoad(t *testing.T) {
	conn, err := store.Open(t.Context(), path.Join(t.TempDir(), "test.db"), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	plays := csvrows.Parse(playsCSV)
	teams := csvrows.Parse(teamsCSV)
	require.NoError(t, store.Import(t.Context(), conn, plays, teams))

	queries := store.New(conn)
	loadedPlays, err := queries.Plays(t.Context())
	require.NoError(t, err)
	require.Equal(t, plays, loadedPlays)

	loadedTeams, err := queries.Teams(t.Context())
	require.NoError(t, err)
	require.Equal(t, teams[:2], loadedTeams)
}

func TestImportReplaces(t *testing.T) {
	conn, err := store.Open(t.Context(), "", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	plays := csvrows.Parse(playsCSV)
	require.NoError(t, store.Import(t.Context(), conn, plays, nil))
	require.NoError(t, store.Import(t.Context(), conn, plays[2:], nil))

	loaded, err := store.New(conn).Plays(t.Context())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "MIA", loaded[0].Get("defteam"))
}

func TestMigrateDown(t *testing.T) {
	conn, err := store.Open(t.Context(), path.Join(t.TempDir(), "down.db"), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, store.Migrate(conn, store.MigrateDn))
	_, err = store.New(conn).Plays(t.Context())
	require.Error(t, err)

	// Running up again restores the schema.
	require.NoError(t, store.Migrate(conn, store.MigrateUp))
	_, err = store.New(conn).Plays(t.Context())
	require.NoError(t, err)
}

func TestOpenExistingMissing(t *testing.T) {
	_, err := store.OpenExisting(t.Context(), path.Join(t.TempDir(), "absent.db"))
	require.ErrorIs(t, err, store.ErrNotFound)
}
