package datasource_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"sync/atomic"
	"testing"

	"github.com/leighmacdonald/gridiron-tui/internal/cache"
	"github.com/leighmacdonald/gridiron-tui/internal/csvrows"
	"github.com/leighmacdonald/gridiron-tui/internal/datasource"
	"github.com/leighmacdonald/gridiron-tui/internal/store"
	"github.com/stretchr/testify/require"
)

const (
	playsCSV = `week,posteam,defteam,play_type,yardline_100,desc
2,BUF,MIA,kickoff,35,Kick
1,BUF,NYJ,kickoff,35,Kick
1,NYJ,BUF,run,75,B.Hall up the middle
10,BUF,KC,pass,60,J.Allen deep right
`
	teamsCSV = `team_abbr,team_name,team_color,team_logo_wikipedia,team_logo_espn
BUF,Buffalo Bills,#00338D,https://upload.wikimedia.org/buf.svg,
NYJ,New York Jets,#125740,,https://a.espncdn.com/nyj.png
`
)

func newServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/plays.csv", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(playsCSV))
	})
	mux.HandleFunc("/teams.csv", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(teamsCSV))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestFetchHTTP(t *testing.T) {
	var hits atomic.Int32
	server := newServer(t, &hits)

	fetcher := datasource.New(server.Client(), nil)
	dataset, err := fetcher.Fetch(t.Context(), server.URL+"/plays.csv", server.URL+"/teams.csv")
	require.NoError(t, err)

	require.Len(t, dataset.Plays, 4)
	require.Len(t, dataset.TeamRows, 2)
	require.Equal(t, []string{"1", "2", "10"}, dataset.Weeks)
	require.Equal(t, "https://a.espncdn.com/nyj.png", dataset.Teams["NYJ"].Logo())
	require.Len(t, dataset.Frames("1"), 2)
	require.Equal(t, int32(2), hits.Load())
}

func TestFetchUsesCache(t *testing.T) {
	t.Setenv("CACHE_DIR", t.TempDir())

	var hits atomic.Int32
	server := newServer(t, &hits)

	fsCache, errCache := cache.New()
	require.NoError(t, errCache)

	fetcher := datasource.New(server.Client(), fsCache)
	for range 3 {
		dataset, err := fetcher.Fetch(t.Context(), server.URL+"/plays.csv", server.URL+"/teams.csv")
		require.NoError(t, err)
		require.Len(t, dataset.Plays, 4)
	}

	require.Equal(t, int32(2), hits.Load())
}

func TestFetchFailureNoPartial(t *testing.T) {
	var hits atomic.Int32
	server := newServer(t, &hits)

	fetcher := datasource.New(server.Client(), nil)
	dataset, err := fetcher.Fetch(t.Context(), server.URL+"/plays.csv", server.URL+"/missing.csv")
	require.ErrorIs(t, err, datasource.ErrFetch)
	require.Nil(t, dataset.Plays)
	require.Nil(t, dataset.Teams)
	require.Empty(t, dataset.Weeks)
}

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	playsPath := path.Join(dir, "plays.csv")
	teamsPath := path.Join(dir, "teams.csv")
	require.NoError(t, os.WriteFile(playsPath, []byte(playsCSV), 0o600))
	require.NoError(t, os.WriteFile(teamsPath, []byte(teamsCSV), 0o600))

	dataset, err := datasource.New(http.DefaultClient, nil).Fetch(t.Context(), playsPath, teamsPath)
	require.NoError(t, err)
	require.Len(t, dataset.Plays, 4)
	require.Contains(t, dataset.Teams, "BUF")

	_, err = datasource.New(http.DefaultClient, nil).Fetch(t.Context(), path.Join(dir, "nope.csv"), teamsPath)
	require.Error(t, err)
}

func TestFetchSQLite(t *testing.T) {
	dbPath := path.Join(t.TempDir(), "gridiron.db")
	conn, err := store.Open(t.Context(), dbPath, true)
	require.NoError(t, err)
	require.NoError(t, store.Import(t.Context(), conn, csvrows.Parse(playsCSV), csvrows.Parse(teamsCSV)))
	require.NoError(t, conn.Close())

	source := datasource.SQLitePrefix + dbPath
	dataset, err := datasource.New(http.DefaultClient, nil).Fetch(t.Context(), source, source)
	require.NoError(t, err)
	require.Equal(t, csvrows.Parse(playsCSV), dataset.Plays)
	require.Equal(t, []string{"1", "2", "10"}, dataset.Weeks)
	require.Equal(t, "Buffalo Bills", dataset.Teams["BUF"].Name)
}

func TestFetchEmptySource(t *testing.T) {
	_, err := datasource.New(http.DefaultClient, nil).Fetch(t.Context(), "", "teams.csv")
	require.ErrorIs(t, err, datasource.ErrFetch)
}

func TestFetchSQLiteMissing(t *testing.T) {
	source := datasource.SQLitePrefix + path.Join(t.TempDir(), "absent.db")
	_, err := datasource.New(http.DefaultClient, nil).Fetch(t.Context(), source, source)
	require.ErrorIs(t, err, datasource.ErrFetch)
}
