package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualifierQuota(t *testing.T) {
	tests := []struct {
		stage   Stage
		players int
		want    int
	}{
		{StageFinale, 1, 1},
		{StageFinale, 8, 1},
		{StagePremiere, 1, 1},
		{StagePremiere, 4, 2},
		{StagePremiere, 5, 2},
		{StagePremiere, 10, 5},
		{StageDemi, 3, 1},
		{StageDemi, 6, 3},
		{StageHuitiemes, 2, 1},
		{StageHuitiemes, 5, 2},
		{StageHuitiemes, 10, 4},
		{StagePremiere, 0, 0},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s_%d", tc.stage, tc.players), func(t *testing.T) {
			assert.Equal(t, tc.want, qualifierQuota(tc.stage, tc.players))
		})
	}
}

func rankedRoom(stage Stage, scores ...int) *Room {
	room := &Room{
		Stage:  stage,
		Scores: make(map[string]int),
	}
	for i, score := range scores {
		id := fmt.Sprintf("p%d", i)
		room.Players = append(room.Players, &Player{ID: id, Name: id, Score: score, Status: StatusWaiting})
		room.Scores[id] = score
	}
	return room
}

func TestEvaluateStageNoTie(t *testing.T) {
	room := rankedRoom(StagePremiere, 40, 30, 20, 10)

	out := evaluateStage(room)

	require.Nil(t, out.tie)
	assert.Equal(t, 2, out.quota)
	assert.Equal(t, []string{"p0", "p1"}, out.qualified)
	assert.Equal(t, []string{"p2", "p3"}, out.eliminated)
	assert.Equal(t, "p0", out.ranking[0].ID)
}

func TestEvaluateStageCutoffTie(t *testing.T) {
	room := rankedRoom(StagePremiere, 30, 20, 20, 10, 0)

	out := evaluateStage(room)

	require.NotNil(t, out.tie)
	assert.Equal(t, 1, out.tie.slotsToFill)
	assert.ElementsMatch(t, []string{"p1", "p2"}, out.tie.candidates)
	assert.Empty(t, out.qualified)
	assert.Empty(t, out.eliminated)
}

func TestEvaluateStageFullCutoffNoTie(t *testing.T) {
	// Everyone at the cutoff fits into the remaining slots: no tie-break.
	room := rankedRoom(StagePremiere, 30, 20, 20, 10)

	out := evaluateStage(room)

	require.Nil(t, out.tie)
	assert.Equal(t, []string{"p0", "p1"}, out.qualified)
}

func TestEvaluateStageSkipsEliminated(t *testing.T) {
	room := rankedRoom(StageDemi, 40, 30, 20, 10)
	room.Players[3].Status = StatusEliminated

	out := evaluateStage(room)

	// 3 competing players, K = 1.
	assert.Equal(t, 1, out.quota)
	assert.Equal(t, []string{"p0"}, out.qualified)
	assert.NotContains(t, out.eliminated, "p3")
	assert.Len(t, out.ranking, 3)
}

func TestEvaluateStageEmptyRoom(t *testing.T) {
	room := rankedRoom(StagePremiere)

	out := evaluateStage(room)

	assert.Nil(t, out.tie)
	assert.Empty(t, out.qualified)
	assert.Empty(t, out.ranking)
}

func TestResolveExhaustedTieFillsInRankingOrder(t *testing.T) {
	room := rankedRoom(StagePremiere, 20, 20, 20, 0)

	out := evaluateStage(room)
	require.NotNil(t, out.tie)
	require.Equal(t, 2, out.tie.slotsToFill)

	out = resolveExhaustedTie(room, out)

	assert.Nil(t, out.tie)
	assert.Equal(t, []string{"p0", "p1"}, out.qualified)
	assert.ElementsMatch(t, []string{"p2", "p3"}, out.eliminated)
}

func TestResolveExhaustedTieKeepsOutrightQualifiers(t *testing.T) {
	room := rankedRoom(StagePremiere, 30, 20, 20, 20, 0, 0)

	out := evaluateStage(room)
	require.NotNil(t, out.tie)
	// K = 3: p0 above the cutoff, three candidates for two slots.
	require.Equal(t, 2, out.tie.slotsToFill)

	out = resolveExhaustedTie(room, out)

	assert.ElementsMatch(t, []string{"p0", "p1", "p2"}, out.qualified)
	assert.ElementsMatch(t, []string{"p3", "p4", "p5"}, out.eliminated)
}
