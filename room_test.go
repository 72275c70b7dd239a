package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomCodeFormat(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 64; i++ {
		code := newRoomCode()
		assert.Len(t, code, roomCodeLength)
		for _, r := range code {
			valid := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
			assert.True(t, valid, "unexpected rune %q in code %q", r, code)
		}
		seen[code] = true
	}

	assert.Greater(t, len(seen), 1, "codes should not collide this often")
}

func TestRegistrySingleRoomPolicy(t *testing.T) {
	reg := newRoomRegistry()

	room, err := reg.Create("host", "Animateur")
	require.NoError(t, err)
	require.NotNil(t, room)

	_, err = reg.Create("other", "Autre")
	assert.ErrorIs(t, err, errRoomExists)

	assert.Same(t, room, reg.Active())
	assert.Same(t, room, reg.Get(room.Code))
	assert.True(t, reg.Has(room.Code))
}

func TestRegistryRemoveThenCreate(t *testing.T) {
	reg := newRoomRegistry()

	first, err := reg.Create("host", "Animateur")
	require.NoError(t, err)

	reg.Remove(first.Code)
	assert.Nil(t, reg.Active())
	assert.False(t, reg.Has(first.Code))

	second, err := reg.Create("host", "Animateur")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestNewRoomDefaults(t *testing.T) {
	reg := newRoomRegistry()
	room, err := reg.Create("host", "Animateur")
	require.NoError(t, err)

	assert.Equal(t, StateWaiting, room.GameState)
	assert.Empty(t, room.Players)
	assert.Empty(t, room.Scores)
	assert.Empty(t, room.Asked)
	assert.Nil(t, room.TieBreak)
	assert.Len(t, room.StageSets, len(stageOrder))
}

func TestRoomViewSnapshot(t *testing.T) {
	reg := newRoomRegistry()
	room, err := reg.Create("host", "Animateur")
	require.NoError(t, err)

	room.Players = append(room.Players, &Player{ID: "amy", Name: "Amy", Status: StatusWaiting})
	room.Scores["amy"] = 15
	room.Stage = StageDemi
	room.Questions = room.StageSets[StageDemi]
	room.CurrentQuestion = 2

	view := room.view()
	assert.Equal(t, room.Code, view.Code)
	assert.Equal(t, "Animateur", view.Host.Name)
	assert.Equal(t, StageDemi, view.Stage)
	assert.Equal(t, 2, view.CurrentQuestion)
	assert.Equal(t, len(room.Questions), view.TotalQuestions)
	assert.Equal(t, 15, view.Scores["amy"])
}

func TestCurrentQPrefersTieBreakQuestion(t *testing.T) {
	room := &Room{
		Questions:       []Question{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}},
		CurrentQuestion: 0,
	}

	require.NotNil(t, room.currentQ())
	assert.Equal(t, 1, room.currentQ().ID)

	room.TieBreak = &TieBreak{Active: true, Question: &Question{ID: 99, Text: "sudden death"}}
	assert.Equal(t, 99, room.currentQ().ID)
	assert.True(t, room.isTieBreak())

	room.TieBreak.Question = nil
	assert.False(t, room.isTieBreak())
	assert.Equal(t, 1, room.currentQ().ID)
}

func TestCurrentQOutOfRange(t *testing.T) {
	room := &Room{Questions: []Question{{ID: 1}}}

	room.CurrentQuestion = 1
	assert.Nil(t, room.currentQ())

	room.CurrentQuestion = -1
	assert.Nil(t, room.currentQ())
}

func TestTieBreakCandidate(t *testing.T) {
	room := &Room{}
	assert.False(t, room.tieBreakCandidate("amy"))

	room.TieBreak = &TieBreak{Candidates: []string{"amy", "ben"}}
	assert.True(t, room.tieBreakCandidate("amy"))
	assert.False(t, room.tieBreakCandidate("zoe"))
}
