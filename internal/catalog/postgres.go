// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

const genreSeparator = "|"

const filmsQuery = `
SELECT
    f.id::text AS id,
    f.title,
    f.director,
    f.genre,
    f."imageUrl" AS image_url,
    f."backdropUrl" AS backdrop_url,
    f.overview,
    f.rating::float8 AS rating,
    f."trailerUrl" AS trailer_url,
    f.year,
    f."tmdbId" AS tmdb_id,
    COALESCE(string_agg(DISTINCT g.name, '|' ORDER BY g.name), '') AS genres
FROM public.films f
LEFT JOIN public.film_genres fg ON f.id = fg."filmId"
LEFT JOIN public.genres g ON fg."genreId" = g.id
GROUP BY f.id, f.title, f.director, f.genre, f."imageUrl", f."backdropUrl",
         f.overview, f.rating, f."trailerUrl", f.year, f."tmdbId", f."createdAt"
ORDER BY f."createdAt" DESC`

// filmRow is the scan target for filmsQuery.
type filmRow struct {
	ID          string   `gorm:"column:id"`
	Title       string   `gorm:"column:title"`
	Director    *string  `gorm:"column:director"`
	Genre       *string  `gorm:"column:genre"`
	ImageURL    *string  `gorm:"column:image_url"`
	BackdropURL *string  `gorm:"column:backdrop_url"`
	Overview    *string  `gorm:"column:overview"`
	Rating      *float64 `gorm:"column:rating"`
	TrailerURL  *string  `gorm:"column:trailer_url"`
	Year        *int     `gorm:"column:year"`
	TMDBID      *int     `gorm:"column:tmdb_id"`
	Genres      string   `gorm:"column:genres"`
}

func (r filmRow) toFilm() recommend.Film {
	var genres []string
	for _, g := range strings.Split(r.Genres, genreSeparator) {
		if g != "" {
			genres = append(genres, g)
		}
	}
	return recommend.Film{
		ID:          r.ID,
		Title:       r.Title,
		Director:    r.Director,
		Genre:       r.Genre,
		Genres:      genres,
		ImageURL:    r.ImageURL,
		BackdropURL: r.BackdropURL,
		Overview:    r.Overview,
		Rating:      r.Rating,
		TrailerURL:  r.TrailerURL,
		Year:        r.Year,
		TMDBID:      r.TMDBID,
	}
}

type likeRow struct {
	UserID string `gorm:"column:user_id"`
	FilmID string `gorm:"column:film_id"`
}

type tmdbRow struct {
	ID     string `gorm:"column:id"`
	TMDBID int    `gorm:"column:tmdb_id"`
}

// Connect opens a pooled GORM connection and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string, maxConns int32) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}
	if maxConns > 0 {
		sqlDB.SetMaxOpenConns(int(maxConns))
		sqlDB.SetMaxIdleConns(int(maxConns) / 2)
	}
	sqlDB.SetConnMaxIdleTime(15 * time.Minute)
	sqlDB.SetConnMaxLifetime(time.Hour)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// PostgresSource reads the catalog from the application database. It never
// writes.
type PostgresSource struct {
	db *gorm.DB
}

// NewPostgresSource wraps an open connection.
func NewPostgresSource(db *gorm.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Films returns every film with its genres, newest first.
func (s *PostgresSource) Films(ctx context.Context) ([]recommend.Film, error) {
	var rows []filmRow
	if err := s.db.WithContext(ctx).Raw(filmsQuery).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("query films: %w", err)
	}

	films := make([]recommend.Film, 0, len(rows))
	for _, r := range rows {
		films = append(films, r.toFilm())
	}
	return films, nil
}

// FilmIDByTMDBID maps a TMDB id to a catalog id.
func (s *PostgresSource) FilmIDByTMDBID(ctx context.Context, tmdbID int) (string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Raw(`SELECT id::text FROM public.films WHERE "tmdbId" = ? LIMIT 1`, tmdbID).
		Scan(&ids).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrFilmNotFound
		}
		return "", fmt.Errorf("query tmdb id %d: %w", tmdbID, err)
	}
	if len(ids) == 0 {
		return "", ErrFilmNotFound
	}
	return ids[0], nil
}

// UserLikes returns the normalized liked film ids of one user.
func (s *PostgresSource) UserLikes(ctx context.Context, userID string) ([]string, error) {
	var raw []string
	err := s.db.WithContext(ctx).
		Raw(`SELECT "filmId"::text FROM public.user_film_likes WHERE "userId"::text = ?`, userID).
		Scan(&raw).Error
	if err != nil {
		return nil, fmt.Errorf("query likes for %s: %w", userID, err)
	}

	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, id := range raw {
		filmID, err := NormalizeLikeID(ctx, s, id)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[filmID]; dup {
			continue
		}
		seen[filmID] = struct{}{}
		out = append(out, filmID)
	}
	return out, nil
}

// AllLikes returns the normalized likes of every user. TMDB ids are resolved
// against a single preloaded lookup instead of one query per like.
func (s *PostgresSource) AllLikes(ctx context.Context) (recommend.LikeSet, error) {
	idx, err := s.loadTMDBIndex(ctx)
	if err != nil {
		return nil, err
	}

	var rows []likeRow
	err = s.db.WithContext(ctx).
		Raw(`SELECT "userId"::text AS user_id, "filmId"::text AS film_id FROM public.user_film_likes`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query likes: %w", err)
	}

	likes := make(recommend.LikeSet)
	for _, r := range rows {
		addLike(likes, r.UserID, idx.normalize(r.FilmID))
	}
	return likes, nil
}

func (s *PostgresSource) loadTMDBIndex(ctx context.Context) (tmdbIndex, error) {
	var rows []tmdbRow
	err := s.db.WithContext(ctx).
		Raw(`SELECT id::text AS id, "tmdbId" AS tmdb_id FROM public.films WHERE "tmdbId" IS NOT NULL`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query tmdb ids: %w", err)
	}

	idx := make(tmdbIndex, len(rows))
	for _, r := range rows {
		// First match wins, mirroring the LIMIT 1 lookup.
		if _, ok := idx[r.TMDBID]; !ok {
			idx[r.TMDBID] = r.ID
		}
	}
	return idx, nil
}
