/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

// Messages coming from clients
type ClientMessage struct {
	Type         string `json:"type"`                    // "create_room", "join_room", "watch_room", "set_stage", "start_game", "show_question", "hide_question", "activate_buzzer", "press_buzzer", "submit_answer", "next_question", "start_tiebreak"
	Name         string `json:"name,omitempty"`          // create_room / join_room
	RoomCode     string `json:"room_code,omitempty"`     // everything else
	Stage        string `json:"stage,omitempty"`         // set_stage
	Choice       *int   `json:"choice,omitempty"`        // submit_answer
	MaxQuestions int    `json:"max_questions,omitempty"` // start_tiebreak
}

// Sent to a single client when an action violates a room-level rule.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

// Sent to every connection whenever the single active room appears or
// disappears, and to each new connection on registration.
type ActiveRoomStatusMessage struct {
	Type   string `json:"type"` // "active_room_status"
	Exists bool   `json:"exists"`
}

type RoomCreatedMessage struct {
	Type     string    `json:"type"` // "room_created"
	RoomCode string    `json:"room_code"`
	Room     *RoomView `json:"room"`
}

type RoomJoinedMessage struct {
	Type     string    `json:"type"` // "room_joined"
	RoomCode string    `json:"room_code"`
	Room     *RoomView `json:"room"`
}

// Sent to a spectator; includes the current question if one is on display.
type RoomWatchedMessage struct {
	Type     string    `json:"type"` // "room_watched"
	RoomCode string    `json:"room_code"`
	Room     *RoomView `json:"room"`
	Question *Question `json:"question,omitempty"`
}

type StageUpdatedMessage struct {
	Type           string    `json:"type"` // "stage_updated"
	Stage          Stage     `json:"stage"`
	TotalQuestions int       `json:"total_questions"`
	Room           *RoomView `json:"room"`
}

type PlayerJoinedMessage struct {
	Type    string         `json:"type"` // "player_joined"
	Players []*Player      `json:"players"`
	Scores  map[string]int `json:"scores"`
}

type PlayerLeftMessage struct {
	Type       string         `json:"type"` // "player_left"
	Players    []*Player      `json:"players"`
	Scores     map[string]int `json:"scores"`
	PlayerName string         `json:"player_name"`
}

type GameStartedMessage struct {
	Type            string    `json:"type"` // "game_started"
	GameState       GameState `json:"game_state"`
	CurrentQuestion int       `json:"current_question"`
	TotalQuestions  int       `json:"total_questions"`
}

type QuestionDisplayedMessage struct {
	Type           string    `json:"type"` // "question_displayed"
	Question       *Question `json:"question"`
	QuestionNumber int       `json:"question_number"`
	TotalQuestions int       `json:"total_questions"`
	GameState      GameState `json:"game_state"`
	QuestionValue  int       `json:"question_value"`
	IsTieBreak     bool      `json:"is_tie_break"`
	TieBreak       *TieBreak `json:"tie_break,omitempty"`
}

type QuestionHiddenMessage struct {
	Type      string    `json:"type"` // "question_hidden"
	GameState GameState `json:"game_state"`
}

type BuzzerActivatedMessage struct {
	Type            string    `json:"type"` // "buzzer_activated"
	GameState       GameState `json:"game_state"`
	CurrentQuestion int       `json:"current_question"`
	Players         []*Player `json:"players"`
	IsTieBreak      bool      `json:"is_tie_break"`
	TieBreak        *TieBreak `json:"tie_break,omitempty"`
}

type BuzzerPressedMessage struct {
	Type       string    `json:"type"` // "buzzer_pressed"
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	GameState  GameState `json:"game_state"`
	Players    []*Player `json:"players"`
	IsTieBreak bool      `json:"is_tie_break"`
	TieBreak   *TieBreak `json:"tie_break,omitempty"`
}

// Sent only to the player holding the buzzer.
type ShowQuestionMessage struct {
	Type           string    `json:"type"` // "show_question"
	Question       *Question `json:"question"`
	QuestionNumber int       `json:"question_number"`
	TotalQuestions int       `json:"total_questions"`
}

type AnswerResultMessage struct {
	Type          string         `json:"type"` // "answer_result"
	PlayerID      string         `json:"player_id,omitempty"`
	PlayerName    string         `json:"player_name,omitempty"`
	Answer        *int           `json:"answer,omitempty"`
	Correct       *int           `json:"correct,omitempty"`
	CorrectAnswer string         `json:"correct_answer,omitempty"`
	IsCorrect     bool           `json:"is_correct"`
	IsTimeout     bool           `json:"is_timeout"`
	Question      *Question      `json:"question"`
	Scores        map[string]int `json:"scores"`
	Players       []*Player      `json:"players"`
	GameState     GameState      `json:"game_state"`
	IsTieBreak    bool           `json:"is_tie_break"`
	TieBreak      *TieBreak      `json:"tie_break,omitempty"`
}

type NextQuestionMessage struct {
	Type            string    `json:"type"` // "next_question"
	CurrentQuestion int       `json:"current_question"`
	GameState       GameState `json:"game_state"`
	Players         []*Player `json:"players"`
	TotalQuestions  int       `json:"total_questions"`
}

type TieBreakReadyMessage struct {
	Type        string   `json:"type"` // "tiebreak_ready"
	Stage       Stage    `json:"stage"`
	Candidates  []string `json:"candidates"`
	SlotsToFill int      `json:"slots_to_fill"`
}

type TieBreakStillTiedMessage struct {
	Type         string   `json:"type"` // "tiebreak_still_tied"
	Stage        Stage    `json:"stage"`
	Candidates   []string `json:"candidates"`
	SlotsToFill  int      `json:"slots_to_fill"`
	AskedCount   int      `json:"asked_count"`
	MaxQuestions int      `json:"max_questions"`
}

type StageFinishedMessage struct {
	Type            string         `json:"type"` // "stage_finished"
	FinalRanking    []*Player      `json:"final_ranking"`
	Scores          map[string]int `json:"scores"`
	Stage           Stage          `json:"stage"`
	QualifiersCount int            `json:"qualifiers_count"`
	Qualified       []string       `json:"qualified"`
	Eliminated      []string       `json:"eliminated"`
}

type GameFinishedMessage struct {
	Type         string         `json:"type"` // "game_finished"
	FinalRanking []*Player      `json:"final_ranking"`
	Scores       map[string]int `json:"scores"`
	Stage        Stage          `json:"stage"`
}

type TimerUpdateMessage struct {
	Type      string    `json:"type"` // "timer_update"
	Kind      timerKind `json:"kind"` // "buzzer" or "answer"
	Remaining int       `json:"remaining"`
}

type HostDisconnectedMessage struct {
	Type string `json:"type"` // "host_disconnected"
}
