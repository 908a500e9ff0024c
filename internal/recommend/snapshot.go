// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Snapshot is one complete, immutable build of every index together with the
// catalog it was built from. Any index may be nil when its input was empty.
type Snapshot struct {
	films    []Film
	filmByID map[string]int
	users    int

	content *ContentIndex
	itemCF  *ItemIndex
	userCF  *UserIndex

	generation uint64
	builtAt    time.Time
	buildTime  time.Duration
}

// buildSnapshot constructs the three indices in parallel. The inputs are
// copied so later changes by the caller cannot leak into the snapshot.
func buildSnapshot(films []Film, likes LikeSet, cfg *Config) (*Snapshot, error) {
	start := time.Now()

	s := &Snapshot{
		films:    make([]Film, len(films)),
		filmByID: make(map[string]int, len(films)),
		users:    len(likes),
	}
	copy(s.films, films)
	for i := range s.films {
		id := s.films[i].ID
		if _, dup := s.filmByID[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFilm, id)
		}
		s.filmByID[id] = i
	}
	owned := cloneLikes(likes)

	var g errgroup.Group
	g.Go(func() error {
		s.content = newContentIndex(s.films, cfg.OverviewChars)
		return nil
	})
	g.Go(func() error {
		s.itemCF = newItemIndex(owned, cfg.ItemNeighbors)
		return nil
	})
	g.Go(func() error {
		s.userCF = newUserIndex(owned, cfg.UserNeighbors)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build indices: %w", err)
	}

	s.builtAt = time.Now()
	s.buildTime = s.builtAt.Sub(start)
	return s, nil
}

func cloneLikes(likes LikeSet) LikeSet {
	out := make(LikeSet, len(likes))
	for user, films := range likes {
		c := make(Set, len(films))
		for id := range films {
			c[id] = struct{}{}
		}
		out[user] = c
	}
	return out
}

// Generation identifies the rebuild that produced the snapshot.
func (s *Snapshot) Generation() uint64 {
	return s.generation
}

// BuiltAt is when construction finished.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// BuildDuration is how long construction took.
func (s *Snapshot) BuildDuration() time.Duration {
	return s.buildTime
}

// FilmCount returns the catalog size.
func (s *Snapshot) FilmCount() int {
	return len(s.films)
}

// UserCount returns how many users had a like set.
func (s *Snapshot) UserCount() int {
	return s.users
}

// Film looks up a catalog record.
func (s *Snapshot) Film(id string) (Film, bool) {
	i, ok := s.filmByID[id]
	if !ok {
		return Film{}, false
	}
	return s.films[i], true
}

// Content returns the content index, or nil if the catalog was empty.
func (s *Snapshot) Content() *ContentIndex {
	return s.content
}

// ItemCF returns the item-item index, or nil if there were no likes.
func (s *Snapshot) ItemCF() *ItemIndex {
	return s.itemCF
}

// UserCF returns the user-user index, or nil if there were no likes.
func (s *Snapshot) UserCF() *UserIndex {
	return s.userCF
}

// The helpers below treat an absent index as having no candidates.

func (s *Snapshot) contentSimilar(id string, k int) []Scored {
	if s.content == nil {
		return nil
	}
	return s.content.SimilarItems(id, k)
}

func (s *Snapshot) contentForUser(liked []string, k int) []Scored {
	if s.content == nil {
		return nil
	}
	return s.content.RecommendForUser(liked, k)
}

func (s *Snapshot) itemSimilar(id string, k int) []Scored {
	if s.itemCF == nil {
		return nil
	}
	return s.itemCF.SimilarItems(id, k)
}

func (s *Snapshot) itemForUser(liked []string, k int) []Scored {
	if s.itemCF == nil {
		return nil
	}
	return s.itemCF.RecommendForUser(liked, k)
}

func (s *Snapshot) userSimilar(id string, k int) []Scored {
	if s.userCF == nil {
		return nil
	}
	return s.userCF.SimilarItems(id, k)
}

func (s *Snapshot) userForUser(userID string, liked []string, k int) []Scored {
	if s.userCF == nil {
		return nil
	}
	return s.userCF.RecommendForUser(userID, liked, k)
}
