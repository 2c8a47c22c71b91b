// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package session

import (
	"math/rand"

	"github.com/cespare/xxhash/v2"
)

// PredeterminedOrder returns a permutation of ids that depends only on
// sessionID and ids. The input slice is not modified.
func PredeterminedOrder(sessionID string, ids []string) []string {
	order := make([]string, len(ids))
	copy(order, ids)

	seed := int64(xxhash.Sum64String(sessionID)) //nolint:gosec // wraparound is fine for a seed
	rng := rand.New(rand.NewSource(seed))        //nolint:gosec // study ordering, not security sensitive
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}
