// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"hash/fnv"
	"sort"
	"strconv"
)

// Query kinds used in response keys.
const (
	KindUser    = "user"
	KindSimilar = "similar"
)

// ResponseKey builds the cache key of a recommendation response:
//
//	recs:<generation>:<kind>:<id>:<algorithm>:<k>
//
// The generation makes every key snapshot specific, so publishing a new
// snapshot retires all cached responses without an explicit flush.
func ResponseKey(generation uint64, kind, id, algorithm string, k int) string {
	b := make([]byte, 0, 32+len(id))
	b = append(b, "recs:"...)
	b = strconv.AppendUint(b, generation, 10)
	b = append(b, ':')
	b = append(b, kind...)
	b = append(b, ':')
	b = append(b, id...)
	b = append(b, ':')
	b = append(b, algorithm...)
	b = append(b, ':')
	b = strconv.AppendInt(b, int64(k), 10)
	return string(b)
}

// UserSubject keys a user query by user ID and the exact likes it was scored
// on, so a new like misses the cache even before the next rebuild.
func UserSubject(userID string, liked []string) string {
	sorted := append([]string(nil), liked...)
	sort.Strings(sorted)

	h := fnv.New64a()
	for _, id := range sorted {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return userID + "#" + strconv.FormatUint(h.Sum64(), 16)
}
