// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Key prefixes for namespacing in BadgerDB.
const (
	filmKeyPrefix  = "film:"
	tmdbKeyPrefix  = "tmdb:"
	likeKeyPrefix  = "like:"
	orderKeyPrefix = "order:"
)

// orderTimeLayout is fixed width so order keys sort chronologically.
const orderTimeLayout = "2006-01-02T15:04:05.000000000Z"

// storedFilm is the value persisted under film:<id>.
type storedFilm struct {
	Film      recommend.Film `json:"film"`
	CreatedAt time.Time      `json:"created_at"`
}

// BadgerStore is an embedded catalog backed by BadgerDB.
//
// Layout:
//
//	film:<id>                 JSON storedFilm
//	tmdb:<tmdbId>             film id
//	like:<user>:<film>        empty
//	order:<created>:<id>      film id, scanned in reverse for newest first
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a store at path. With inMemory set the
// path is ignored and nothing touches disk.
func OpenBadgerStore(path string, inMemory bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB internal logs
	opts.ValueLogFileSize = 64 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger catalog: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStoreFromDB wraps an existing BadgerDB connection.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func orderKey(createdAt time.Time, id string) []byte {
	return []byte(orderKeyPrefix + createdAt.UTC().Format(orderTimeLayout) + ":" + id)
}

func likeKey(userID, filmID string) []byte {
	return []byte(likeKeyPrefix + userID + ":" + filmID)
}

// PutFilm inserts or replaces a film. Replacing keeps the original creation
// time so the film does not move in the listing order.
func (s *BadgerStore) PutFilm(ctx context.Context, film recommend.Film, createdAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if film.ID == "" {
		return fmt.Errorf("%w: film id cannot be empty", ErrInvalidID)
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(filmKeyPrefix + film.ID)

		existing, err := getStoredFilm(txn, key)
		switch {
		case err == nil:
			createdAt = existing.CreatedAt
			if existing.Film.TMDBID != nil {
				if err := txn.Delete([]byte(tmdbKeyPrefix + strconv.Itoa(*existing.Film.TMDBID))); err != nil {
					return err
				}
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		data, err := json.Marshal(storedFilm{Film: film, CreatedAt: createdAt})
		if err != nil {
			return fmt.Errorf("marshal film: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		if err := txn.Set(orderKey(createdAt, film.ID), []byte(film.ID)); err != nil {
			return err
		}
		if film.TMDBID != nil {
			return txn.Set([]byte(tmdbKeyPrefix+strconv.Itoa(*film.TMDBID)), []byte(film.ID))
		}
		return nil
	})
}

// DeleteFilm removes a film and its index entries. Likes referencing it are
// left alone; snapshots drop stale references on their own.
func (s *BadgerStore) DeleteFilm(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(filmKeyPrefix + id)
		existing, err := getStoredFilm(txn, key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrFilmNotFound
		}
		if err != nil {
			return err
		}
		if existing.Film.TMDBID != nil {
			if err := txn.Delete([]byte(tmdbKeyPrefix + strconv.Itoa(*existing.Film.TMDBID))); err != nil {
				return err
			}
		}
		if err := txn.Delete(orderKey(existing.CreatedAt, id)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// PutLike records that userID likes filmID. User ids must not contain ':'.
func (s *BadgerStore) PutLike(ctx context.Context, userID, filmID string) error {
	if err := validateLike(userID, filmID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(likeKey(userID, filmID), nil)
	})
}

// DeleteLike removes a like. Removing a missing like is not an error.
func (s *BadgerStore) DeleteLike(ctx context.Context, userID, filmID string) error {
	if err := validateLike(userID, filmID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(likeKey(userID, filmID))
	})
}

func validateLike(userID, filmID string) error {
	if userID == "" || filmID == "" {
		return fmt.Errorf("%w: user and film ids are required", ErrInvalidID)
	}
	if strings.Contains(userID, ":") {
		return fmt.Errorf("%w: user id %q contains ':'", ErrInvalidID, userID)
	}
	return nil
}

// Films returns every film, newest first.
func (s *BadgerStore) Films(ctx context.Context) ([]recommend.Film, error) {
	var films []recommend.Film

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(orderKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts from the last key carrying the prefix.
		seek := append([]byte(orderKeyPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(opts.Prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			stored, err := getStoredFilm(txn, []byte(filmKeyPrefix+string(id)))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			films = append(films, stored.Film)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	return films, nil
}

// FilmIDByTMDBID maps a TMDB id to a catalog id.
func (s *BadgerStore) FilmIDByTMDBID(ctx context.Context, tmdbID int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var id string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		id, err = lookupTMDB(txn, tmdbID)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// AllLikes returns the normalized likes of every user.
func (s *BadgerStore) AllLikes(ctx context.Context) (recommend.LikeSet, error) {
	likes := make(recommend.LikeSet)

	err := s.db.View(func(txn *badger.Txn) error {
		return scanLikes(ctx, txn, []byte(likeKeyPrefix), func(userID, filmID string) {
			addLike(likes, userID, filmID)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	return likes, nil
}

// UserLikes returns the normalized liked film ids of one user.
func (s *BadgerStore) UserLikes(ctx context.Context, userID string) ([]string, error) {
	if userID == "" || strings.Contains(userID, ":") {
		return []string{}, nil
	}

	out := []string{}
	seen := make(map[string]struct{})
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(likeKeyPrefix + userID + ":")
		return scanLikes(ctx, txn, prefix, func(_, filmID string) {
			if _, dup := seen[filmID]; dup {
				return
			}
			seen[filmID] = struct{}{}
			out = append(out, filmID)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list likes for %s: %w", userID, err)
	}
	return out, nil
}

// scanLikes walks like keys under prefix and reports each like with its film
// id normalized through the tmdb index.
func scanLikes(ctx context.Context, txn *badger.Txn, prefix []byte, fn func(userID, filmID string)) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false // Keys only
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		rest := strings.TrimPrefix(string(it.Item().Key()), likeKeyPrefix)
		userID, rawFilmID, ok := strings.Cut(rest, ":")
		if !ok || rawFilmID == "" {
			continue
		}

		filmID := rawFilmID
		if tmdbID, numeric := ParseTMDBID(rawFilmID); numeric {
			mapped, err := lookupTMDB(txn, tmdbID)
			switch {
			case err == nil:
				filmID = mapped
			case !errors.Is(err, ErrFilmNotFound):
				return err
			}
		}
		fn(userID, filmID)
	}
	return nil
}

func lookupTMDB(txn *badger.Txn, tmdbID int) (string, error) {
	item, err := txn.Get([]byte(tmdbKeyPrefix + strconv.Itoa(tmdbID)))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrFilmNotFound
	}
	if err != nil {
		return "", err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

func getStoredFilm(txn *badger.Txn, key []byte) (storedFilm, error) {
	var stored storedFilm
	item, err := txn.Get(key)
	if err != nil {
		return stored, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &stored)
	})
	return stored, err
}
