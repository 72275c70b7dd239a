/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"sort"

	"github.com/samber/lo"
)

// qualifierQuota returns how many players advance out of a stage.
func qualifierQuota(stage Stage, playerCount int) int {
	if playerCount == 0 {
		return 0
	}

	var k int
	switch stage {
	case StageFinale:
		k = 1
	case StageHuitiemes:
		k = 2 * playerCount / 5
	default: // premiere, demi
		k = playerCount / 2
	}

	return max(k, 1)
}

// tieCandidates describes an unresolved cutoff: more players sit exactly at
// the cutoff score than there are slots left.
type tieCandidates struct {
	candidates  []string
	slotsToFill int
}

// stageOutcome is the result of ranking a stage's players against the quota.
type stageOutcome struct {
	ranking    []*Player
	quota      int
	qualified  []string
	eliminated []string
	tie        *tieCandidates
}

// evaluateStage ranks the stage's competing players by score and applies the
// qualifier quota. Players already eliminated in an earlier stage do not
// compete. The sort is stable, so equal scores keep join order; that order is
// also the deterministic fallback when a tie-break exhausts its questions.
func evaluateStage(room *Room) stageOutcome {
	competing := lo.Filter(room.Players, func(p *Player, _ int) bool {
		return p.Status != StatusEliminated
	})

	ranking := make([]*Player, len(competing))
	copy(ranking, competing)
	sort.SliceStable(ranking, func(i, j int) bool {
		return room.Scores[ranking[i].ID] > room.Scores[ranking[j].ID]
	})

	out := stageOutcome{
		ranking: ranking,
		quota:   qualifierQuota(room.Stage, len(ranking)),
	}
	if len(ranking) == 0 {
		return out
	}

	cutoff := 0
	if out.quota <= len(ranking) {
		cutoff = room.Scores[ranking[out.quota-1].ID]
	}

	above := lo.Filter(ranking, func(p *Player, _ int) bool {
		return room.Scores[p.ID] > cutoff
	})
	at := lo.Filter(ranking, func(p *Player, _ int) bool {
		return room.Scores[p.ID] == cutoff
	})

	slotsToFill := out.quota - len(above)
	if len(at) > slotsToFill && slotsToFill > 0 {
		out.tie = &tieCandidates{
			candidates:  lo.Map(at, func(p *Player, _ int) string { return p.ID }),
			slotsToFill: slotsToFill,
		}
		return out
	}

	for i, p := range ranking {
		if i < out.quota {
			out.qualified = append(out.qualified, p.ID)
		} else {
			out.eliminated = append(out.eliminated, p.ID)
		}
	}

	return out
}

// resolveExhaustedTie fills the remaining slots from the tied candidates in
// ranking order, which for equal scores is room join order. Used when a
// tie-break runs out of questions without separating the candidates.
func resolveExhaustedTie(room *Room, out stageOutcome) stageOutcome {
	if out.tie == nil {
		return out
	}

	cutoffIDs := lo.SliceToMap(out.tie.candidates, func(id string) (string, struct{}) {
		return id, struct{}{}
	})

	taken := 0
	for _, p := range out.ranking {
		if _, tied := cutoffIDs[p.ID]; tied {
			if taken < out.tie.slotsToFill {
				out.qualified = append(out.qualified, p.ID)
				taken++
			} else {
				out.eliminated = append(out.eliminated, p.ID)
			}
			continue
		}

		if room.Scores[p.ID] > room.Scores[out.tie.candidates[0]] {
			out.qualified = append(out.qualified, p.ID)
		} else {
			out.eliminated = append(out.eliminated, p.ID)
		}
	}

	out.tie = nil

	return out
}
