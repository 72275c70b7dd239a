/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"crypto/rand"
	"errors"
	"time"
)

// GameState is a room's finite-state value.
type GameState string

const (
	StateWaiting           GameState = "waiting"
	StateQuestionDisplayed GameState = "question_displayed"
	StateQuestionActive    GameState = "question_active"
	StateBuzzerActive      GameState = "buzzer_active"
	StateAnswering         GameState = "answering"
	StateResults           GameState = "results"
	StateFinished          GameState = "finished"
)

// PlayerStatus reflects how a player relates to the question in play and,
// at stage end, to the qualification outcome.
type PlayerStatus string

const (
	StatusWaiting    PlayerStatus = "waiting"
	StatusSelected   PlayerStatus = "selected"
	StatusBlocked    PlayerStatus = "blocked"
	StatusCorrect    PlayerStatus = "correct"
	StatusIncorrect  PlayerStatus = "incorrect"
	StatusQualified  PlayerStatus = "qualified"
	StatusEliminated PlayerStatus = "eliminated"
	StatusWinner     PlayerStatus = "winner"
)

// Player holds the data we store server-side for one joined connection.
type Player struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Score  int          `json:"score"`
	Status PlayerStatus `json:"status"`
}

type RoomHost struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Buzzer is the exclusive claim on the current question. HolderID is non-empty
// only while the room is in the answering state.
type Buzzer struct {
	Active    bool      `json:"active"`
	HolderID  string    `json:"holder_id,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// TieBreak tracks an unresolved stage-end tie and the sudden-death sub-round
// played to settle it.
type TieBreak struct {
	Active       bool      `json:"active"`
	Candidates   []string  `json:"candidates"`
	SlotsToFill  int       `json:"slots_to_fill"`
	AskedCount   int       `json:"asked_count"`
	MaxQuestions int       `json:"max_questions"`
	Question     *Question `json:"-"`
}

// Room is the aggregate root for one game session. It is owned and mutated
// exclusively by the Gateway loop; nothing else writes to it.
type Room struct {
	Code            string
	Host            RoomHost
	Players         []*Player
	Stage           Stage
	StageSets       map[Stage][]Question
	Questions       []Question
	CurrentQuestion int
	CurrentValue    int
	Asked           map[int]bool
	GameState       GameState
	Buzzer          Buzzer
	Scores          map[string]int
	TieBreak        *TieBreak

	timers map[timerKind]*countdown
}

// RoomView is the JSON-facing snapshot sent inside room_created, room_joined,
// room_watched and stage_updated events.
type RoomView struct {
	Code            string         `json:"code"`
	Host            RoomHost       `json:"host"`
	Players         []*Player      `json:"players"`
	Stage           Stage          `json:"stage,omitempty"`
	GameState       GameState      `json:"game_state"`
	CurrentQuestion int            `json:"current_question"`
	TotalQuestions  int            `json:"total_questions"`
	Scores          map[string]int `json:"scores"`
	Buzzer          Buzzer         `json:"buzzer"`
	TieBreak        *TieBreak      `json:"tie_break,omitempty"`
}

func (r *Room) view() *RoomView {
	return &RoomView{
		Code:            r.Code,
		Host:            r.Host,
		Players:         r.Players,
		Stage:           r.Stage,
		GameState:       r.GameState,
		CurrentQuestion: r.CurrentQuestion,
		TotalQuestions:  len(r.Questions),
		Scores:          r.Scores,
		Buzzer:          r.Buzzer,
		TieBreak:        r.TieBreak,
	}
}

func (r *Room) player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// currentQ returns the question in play: the sudden-death question during a
// tie-break, the cursor's question otherwise.
func (r *Room) currentQ() *Question {
	if r.TieBreak != nil && r.TieBreak.Question != nil {
		return r.TieBreak.Question
	}
	if r.CurrentQuestion < 0 || r.CurrentQuestion >= len(r.Questions) {
		return nil
	}
	return &r.Questions[r.CurrentQuestion]
}

func (r *Room) isTieBreak() bool {
	return r.TieBreak != nil && r.TieBreak.Question != nil
}

func (r *Room) tieBreakCandidate(id string) bool {
	if r.TieBreak == nil {
		return false
	}
	for _, c := range r.TieBreak.Candidates {
		if c == id {
			return true
		}
	}
	return false
}

var errRoomExists = errors.New("a room already exists")

// RoomRegistry maps room codes to rooms and enforces the single-active-room
// policy. It is owned by the Gateway loop, which serializes all access, so no
// locking is needed here.
type RoomRegistry struct {
	rooms map[string]*Room
}

func newRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*Room),
	}
}

// Active returns the single live room, or nil.
func (reg *RoomRegistry) Active() *Room {
	for _, room := range reg.rooms {
		return room
	}
	return nil
}

func (reg *RoomRegistry) Get(code string) *Room {
	return reg.rooms[code]
}

func (reg *RoomRegistry) Has(code string) bool {
	_, ok := reg.rooms[code]
	return ok
}

func (reg *RoomRegistry) Remove(code string) {
	delete(reg.rooms, code)
}

// Create builds a new room for the given host. It fails while another room is
// live, and retries code generation on the (unlikely) collision.
func (reg *RoomRegistry) Create(hostID, hostName string) (*Room, error) {
	if len(reg.rooms) > 0 {
		return nil, errRoomExists
	}

	code := newRoomCode()
	for reg.Has(code) {
		code = newRoomCode()
	}

	room := &Room{
		Code:      code,
		Host:      RoomHost{ID: hostID, Name: hostName},
		Players:   []*Player{},
		StageSets: stageQuestionSets(),
		Asked:     make(map[int]bool),
		GameState: StateWaiting,
		Scores:    make(map[string]int),
		timers:    make(map[timerKind]*countdown),
	}
	reg.rooms[code] = room

	return room, nil
}

const roomCodeLength = 6

// newRoomCode generates a crypto-random human-typeable room code, using
// rejection sampling to keep the draw uniform.
func newRoomCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const max = byte(255 - (256 % len(letters)))

	out := make([]byte, 0, roomCodeLength)
	buf := make([]byte, roomCodeLength*2)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		for _, b := range buf {
			if b <= max {
				out = append(out, letters[int(b)%len(letters)])
				if len(out) == roomCodeLength {
					return string(out)
				}
			}
		}
	}
}
