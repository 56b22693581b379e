// Package cache implements a very trivial filesystem cache for downloaded data sources.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/leighmacdonald/gridiron-tui/internal/config"
)

const (
	// How long until a entry is considered stale.
	maxCacheAge = time.Hour * 24
)

var (
	ErrCacheMiss = errors.New("cache miss error")
	errCacheSet  = errors.New("cache set error")
	errCacheDir  = errors.New("cache dir error")
)

type Cache interface {
	Get(key string, variant ItemVariant) ([]byte, error)
	Set(key string, variant ItemVariant, content []byte) error
}

type ItemVariant int

const (
	VariantPlays ItemVariant = iota
	VariantTeams
)

// Filesystem implements the default filesystem based Cache interface.
type Filesystem struct {
	cacheDir string
	maxAge   time.Duration
}

func New() (Filesystem, error) {
	cachePath := config.PathCache(config.CacheDirName)
	if err := os.MkdirAll(cachePath, 0o700); err != nil {
		slog.Error("Failed to make cache root", slog.String("error", err.Error()),
			slog.String("path", cachePath))

		return Filesystem{}, errors.Join(err, errCacheDir)
	}

	return Filesystem{cacheDir: cachePath, maxAge: maxCacheAge}, nil
}

// WithMaxAge returns a copy of the cache using a different staleness limit.
func (c Filesystem) WithMaxAge(maxAge time.Duration) Filesystem {
	c.maxAge = maxAge

	return c
}

func (c Filesystem) Set(key string, variant ItemVariant, content []byte) error {
	file, errFile := os.Create(c.filePath(key, variant))
	if errFile != nil {
		return errors.Join(errFile, errCacheSet)
	}

	defer func(file io.Closer) {
		if err := file.Close(); err != nil {
			slog.Error("Failed to close cache file", slog.String("error", err.Error()))
		}
	}(file)

	if _, err := file.Write(content); err != nil {
		return errors.Join(err, errCacheSet)
	}

	return nil
}

func (c Filesystem) Get(key string, variant ItemVariant) ([]byte, error) {
	fullPath := c.filePath(key, variant)

	file, errFile := os.Open(fullPath)
	if errFile != nil {
		return nil, errors.Join(errFile, ErrCacheMiss)
	}

	stat, errStat := file.Stat()
	if errStat != nil {
		if err := file.Close(); err != nil {
			return nil, errors.Join(errStat, err, ErrCacheMiss)
		}

		return nil, errors.Join(errStat, ErrCacheMiss)
	}

	if time.Since(stat.ModTime()) > c.maxAge {
		if err := file.Close(); err != nil {
			return nil, errors.Join(err, ErrCacheMiss)
		}

		if err := os.Remove(fullPath); err != nil {
			return nil, errors.Join(err, ErrCacheMiss)
		}

		return nil, ErrCacheMiss
	}

	body, errRead := io.ReadAll(file)
	if errRead != nil {
		if err := file.Close(); err != nil {
			return nil, errors.Join(err, ErrCacheMiss)
		}

		return nil, errors.Join(errRead, ErrCacheMiss)
	}

	if err := file.Close(); err != nil {
		return nil, errors.Join(err, ErrCacheMiss)
	}

	return body, nil
}

func (c Filesystem) filePath(key string, variant ItemVariant) string {
	return path.Join(c.cacheDir, cacheName(key, variant))
}

func cacheName(key string, variant ItemVariant) string {
	sum := sha256.Sum256([]byte(key))

	return hex.EncodeToString(sum[:]) + "_" + strconv.Itoa(int(variant))
}
