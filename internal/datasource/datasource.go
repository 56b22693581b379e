// Package datasource loads the play-by-play and team tables from a url, a local file or the
// imported sqlite store.
package datasource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/gridiron-tui/internal/cache"
	"github.com/leighmacdonald/gridiron-tui/internal/csvrows"
	"github.com/leighmacdonald/gridiron-tui/internal/play"
	"github.com/leighmacdonald/gridiron-tui/internal/store"
	"golang.org/x/sync/errgroup"
)

// SQLitePrefix marks a source as a database created by the import command.
const SQLitePrefix = "sqlite://"

var (
	ErrFetch      = errors.New("failed to fetch data source")
	errStatusCode = errors.New("unexpected status code")
	errEmptyPath  = errors.New("empty source")
)

// HTTPDoer defines a common interface for HTTP clients.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Dataset is everything loaded from both sources. It is only ever returned whole.
type Dataset struct {
	Plays    []csvrows.Record
	TeamRows []csvrows.Record
	Teams    map[string]play.Team
	Weeks    []string
}

// Frames builds the frames for a single week.
func (d Dataset) Frames(week string) []play.Frame {
	return play.Build(d.Plays, week)
}

// Fetcher retrieves data sources. The cache is optional.
type Fetcher struct {
	httpClient HTTPDoer
	cache      cache.Cache
}

func New(httpClient HTTPDoer, cache cache.Cache) *Fetcher {
	return &Fetcher{httpClient: httpClient, cache: cache}
}

// Fetch loads both sources concurrently. If either fails the other is cancelled and no
// partial dataset is returned.
func (f *Fetcher) Fetch(ctx context.Context, playsSource string, teamsSource string) (Dataset, error) {
	var (
		plays []csvrows.Record
		teams []csvrows.Record
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		records, err := f.records(groupCtx, playsSource, cache.VariantPlays)
		if err != nil {
			return fmt.Errorf("plays %s: %w", playsSource, err)
		}
		plays = records

		return nil
	})
	group.Go(func() error {
		records, err := f.records(groupCtx, teamsSource, cache.VariantTeams)
		if err != nil {
			return fmt.Errorf("teams %s: %w", teamsSource, err)
		}
		teams = records

		return nil
	})

	if err := group.Wait(); err != nil {
		return Dataset{}, errors.Join(err, ErrFetch)
	}

	slog.Info("Loaded data sources", slog.Int("plays", len(plays)), slog.Int("teams", len(teams)))

	return Dataset{
		Plays:    plays,
		TeamRows: teams,
		Teams:    play.Teams(teams),
		Weeks:    play.Weeks(plays),
	}, nil
}

func (f *Fetcher) records(ctx context.Context, source string, variant cache.ItemVariant) ([]csvrows.Record, error) {
	source = strings.TrimSpace(source)

	switch {
	case source == "":
		return nil, errEmptyPath
	case strings.HasPrefix(source, SQLitePrefix):
		return loadStore(ctx, strings.TrimPrefix(source, SQLitePrefix), variant)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		body, err := f.download(ctx, source, variant)
		if err != nil {
			return nil, err
		}

		return csvrows.ParseReader(bytes.NewReader(body))
	default:
		file, errOpen := os.Open(source)
		if errOpen != nil {
			return nil, errOpen
		}

		defer func(file io.Closer) {
			if err := file.Close(); err != nil {
				slog.Error("Failed to close source file", slog.String("error", err.Error()))
			}
		}(file)

		return csvrows.ParseReader(file)
	}
}

func (f *Fetcher) download(ctx context.Context, url string, variant cache.ItemVariant) ([]byte, error) {
	if f.cache != nil {
		if body, errCache := f.cache.Get(url, variant); errCache == nil {
			slog.Debug("Using cached source", slog.String("url", url), slog.String("size", humanize.Bytes(uint64(len(body)))))

			return body, nil
		}
	}

	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if errReq != nil {
		return nil, errReq
	}

	resp, errResp := f.httpClient.Do(req) //nolint:bodyclose
	if errResp != nil {
		return nil, errResp
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			slog.Error("Failed to close response body", slog.String("error", err.Error()))
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", errStatusCode, resp.StatusCode)
	}

	body, errBody := io.ReadAll(resp.Body)
	if errBody != nil {
		return nil, errBody
	}

	slog.Debug("Downloaded source", slog.String("url", url), slog.String("size", humanize.Bytes(uint64(len(body)))))

	if f.cache != nil {
		if err := f.cache.Set(url, variant, body); err != nil {
			slog.Warn("Failed to cache source", slog.String("url", url), slog.String("error", err.Error()))
		}
	}

	return body, nil
}

func loadStore(ctx context.Context, path string, variant cache.ItemVariant) ([]csvrows.Record, error) {
	if path == "" {
		return nil, errEmptyPath
	}

	conn, errConn := store.OpenExisting(ctx, path)
	if errConn != nil {
		return nil, errConn
	}

	defer func() {
		if err := conn.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}()

	queries := store.New(conn)
	if variant == cache.VariantTeams {
		return queries.Teams(ctx)
	}

	return queries.Plays(ctx)
}
