// Buzzbox Tournament Quiz
//
// A single host drives a four-stage elimination tournament: questions are
// revealed, a buzzer window opens, and the first player to press wins the
// exclusive right to answer. Correct answers score the question's value (5 or
// 10 points); wrong answers cost 5 (never below zero) and reopen the buzzer
// for everyone else. When a stage's questions run out, the top players by
// score qualify for the next stage; players tied at the cutoff settle it in
// sudden-death tie-break questions.
//
// Features:
// - One authoritative Gateway goroutine owns all room state; intents from
//   every connection are processed strictly in arrival order, which is what
//   makes "first buzz wins" well-defined
// - At most one room exists at a time; its code is a random 6-char draw
// - Host-only controls: stage selection, question reveal/hide, buzzer
//   activation, advancing questions, launching tie-break rounds
// - Per-room countdowns for the buzz and answer windows, with remaining
//   seconds broadcast every tick
// - Spectators can watch a room without taking a player slot
// - Question bank partitioned into disjoint per-stage sets; no question is
//   ever asked twice in a room, tie-breaks included

package main

import (
	"time"
)

type intent struct {
	client *Client
	msg    ClientMessage
}

// Gateway is the single-writer actor at the core of the game: it owns the
// room registry, every room aggregate, and the set of connected clients.
// All mutation happens on the run loop; countdown goroutines only feed
// events back through timerEvents.
type Gateway struct {
	cfg      *Config
	registry *RoomRegistry
	clients  map[*Client]bool

	register    chan *Client
	unreg       chan *Client
	intents     chan intent
	timerEvents chan timerEvent

	tickInterval time.Duration
}

func newGateway(cfg *Config) *Gateway {
	return &Gateway{
		cfg:          cfg,
		registry:     newRoomRegistry(),
		clients:      make(map[*Client]bool),
		register:     make(chan *Client),
		unreg:        make(chan *Client),
		intents:      make(chan intent),
		timerEvents:  make(chan timerEvent, 64),
		tickInterval: time.Second,
	}
}

func (g *Gateway) run() {
	for {
		select {
		case c := <-g.register:
			g.clients[c] = true
			g.sendTo(c, ActiveRoomStatusMessage{
				Type:   "active_room_status",
				Exists: g.registry.Active() != nil,
			})

		case c := <-g.unreg:
			if _, ok := g.clients[c]; ok {
				delete(g.clients, c)
				close(c.send)
			}
			g.handleDisconnect(c)

		case in := <-g.intents:
			g.dispatch(in.client, in.msg)

		case ev := <-g.timerEvents:
			g.handleTimerEvent(ev)
		}
	}
}

func (g *Gateway) dispatch(c *Client, msg ClientMessage) {
	switch msg.Type {
	case "create_room":
		g.handleCreateRoom(c, msg)
	case "join_room":
		g.handleJoinRoom(c, msg)
	case "watch_room":
		g.handleWatchRoom(c, msg)
	case "set_stage":
		g.handleSetStage(c, msg)
	case "start_game":
		g.handleStartGame(c, msg)
	case "show_question":
		g.handleShowQuestion(c, msg)
	case "hide_question":
		g.handleHideQuestion(c, msg)
	case "activate_buzzer":
		g.handleActivateBuzzer(c, msg)
	case "press_buzzer":
		g.handlePressBuzzer(c, msg)
	case "submit_answer":
		g.handleSubmitAnswer(c, msg)
	case "next_question":
		g.handleNextQuestion(c, msg)
	case "start_tiebreak":
		g.handleStartTieBreak(c, msg)
	default:
		// ignore unknown types
	}
}

// ---- Delivery helpers ----

func (g *Gateway) sendTo(c *Client, msg any) {
	select {
	case c.send <- msg:
	default:
		delete(g.clients, c)
		close(c.send)
	}
}

func (g *Gateway) sendError(c *Client, text string) {
	g.sendTo(c, ErrorMessage{Type: "error", Message: text})
}

func (g *Gateway) broadcastAll(msg any) {
	for c := range g.clients {
		g.sendTo(c, msg)
	}
}

func (g *Gateway) broadcastRoom(code string, msg any) {
	for c := range g.clients {
		if c.roomCode == code {
			g.sendTo(c, msg)
		}
	}
}

func (g *Gateway) clientByID(id string) *Client {
	for c := range g.clients {
		if c.id == id {
			return c
		}
	}
	return nil
}

// hostRoom resolves a host-only intent: the room must exist and the caller
// must be its host. Anything else is silently dropped.
func (g *Gateway) hostRoom(c *Client, code string) *Room {
	room := g.registry.Get(code)
	if room == nil || room.Host.ID != c.id {
		return nil
	}
	return room
}

// ---- Room lifecycle ----

func (g *Gateway) handleCreateRoom(c *Client, msg ClientMessage) {
	if msg.Name == "" {
		return
	}

	room, err := g.registry.Create(c.id, msg.Name)
	if err != nil {
		g.sendError(c, "Une salle existe déjà. Réessayez plus tard.")
		return
	}

	c.roomCode = room.Code

	g.broadcastAll(ActiveRoomStatusMessage{Type: "active_room_status", Exists: true})
	g.sendTo(c, RoomCreatedMessage{Type: "room_created", RoomCode: room.Code, Room: room.view()})

	logf(g.cfg, "GAMES: Room %s created by %q", room.Code, msg.Name)
}

func (g *Gateway) handleJoinRoom(c *Client, msg ClientMessage) {
	if msg.Name == "" || msg.RoomCode == "" {
		return
	}

	room := g.registry.Get(msg.RoomCode)
	if room == nil {
		g.sendError(c, "Salle introuvable")
		return
	}
	if room.GameState != StateWaiting {
		g.sendError(c, "La partie a déjà commencé")
		return
	}
	if room.Host.ID == c.id || room.player(c.id) != nil {
		return
	}

	player := &Player{
		ID:     c.id,
		Name:   msg.Name,
		Score:  0,
		Status: StatusWaiting,
	}
	room.Players = append(room.Players, player)
	room.Scores[c.id] = 0
	c.roomCode = room.Code

	g.broadcastRoom(room.Code, PlayerJoinedMessage{
		Type:    "player_joined",
		Players: room.Players,
		Scores:  room.Scores,
	})
	g.sendTo(c, RoomJoinedMessage{Type: "room_joined", RoomCode: room.Code, Room: room.view()})

	logf(g.cfg, "GAMES: Player %q joined %s", msg.Name, room.Code)
}

func (g *Gateway) handleWatchRoom(c *Client, msg ClientMessage) {
	room := g.registry.Get(msg.RoomCode)
	if room == nil {
		g.sendError(c, "Salle introuvable")
		return
	}

	c.roomCode = room.Code

	watched := RoomWatchedMessage{Type: "room_watched", RoomCode: room.Code, Room: room.view()}
	if room.GameState == StateQuestionDisplayed {
		watched.Question = room.currentQ()
	}
	g.sendTo(c, watched)
}

func (g *Gateway) handleDisconnect(c *Client) {
	if c.roomCode == "" {
		return
	}

	room := g.registry.Get(c.roomCode)
	if room == nil {
		return
	}

	if room.Host.ID == c.id {
		g.broadcastRoom(room.Code, HostDisconnectedMessage{Type: "host_disconnected"})
		g.clearTimers(room)
		g.registry.Remove(room.Code)

		for other := range g.clients {
			if other.roomCode == room.Code {
				other.roomCode = ""
			}
		}
		g.broadcastAll(ActiveRoomStatusMessage{Type: "active_room_status", Exists: false})

		logf(g.cfg, "GAMES: Room %s removed (host disconnected)", room.Code)
		return
	}

	player := room.player(c.id)
	if player == nil {
		// Spectator; nothing to clean up.
		return
	}

	dst := room.Players[:0]
	for _, p := range room.Players {
		if p.ID != c.id {
			dst = append(dst, p)
		}
	}
	room.Players = dst
	delete(room.Scores, c.id)

	// If this player held the buzzer, the answer window runs out on its own;
	// the expiry handler tolerates the missing player.
	g.broadcastRoom(room.Code, PlayerLeftMessage{
		Type:       "player_left",
		Players:    room.Players,
		Scores:     room.Scores,
		PlayerName: player.Name,
	})

	logf(g.cfg, "GAMES: Player %q left %s", player.Name, room.Code)
}

// ---- Host question flow ----

func (g *Gateway) handleSetStage(c *Client, msg ClientMessage) {
	room := g.hostRoom(c, msg.RoomCode)
	if room == nil {
		return
	}

	stage, ok := parseStage(msg.Stage)
	if !ok {
		g.sendError(c, "Manche inconnue")
		return
	}
	if room.GameState != StateWaiting && room.GameState != StateFinished {
		g.sendError(c, "Impossible de changer de manche en cours de partie")
		return
	}

	g.clearTimers(room)

	set := shuffledQuestions(room.StageSets[stage])
	room.StageSets[stage] = set

	// Questions already played in this room never come back, even when the
	// host re-selects a stage.
	room.Questions = room.Questions[:0]
	for _, q := range set {
		if !room.Asked[q.ID] {
			room.Questions = append(room.Questions, q)
		}
	}

	room.Stage = stage
	room.CurrentQuestion = 0
	room.CurrentValue = 0
	room.Buzzer = Buzzer{}
	room.TieBreak = nil
	room.GameState = StateWaiting

	for _, p := range room.Players {
		if p.Status == StatusEliminated {
			continue
		}
		p.Status = StatusWaiting
		p.Score = 0
		room.Scores[p.ID] = 0
	}

	g.broadcastRoom(room.Code, StageUpdatedMessage{
		Type:           "stage_updated",
		Stage:          stage,
		TotalQuestions: len(room.Questions),
		Room:           room.view(),
	})

	logf(g.cfg, "GAMES: Room %s switched to stage %s (%d questions)", room.Code, stage, len(room.Questions))
}

func (g *Gateway) handleStartGame(c *Client, msg ClientMessage) {
	room := g.hostRoom(c, msg.RoomCode)
	if room == nil {
		return
	}

	if room.Stage == "" || len(room.Questions) == 0 {
		g.sendError(c, "Aucune manche sélectionnée")
		return
	}
	if room.GameState != StateWaiting {
		return
	}

	room.GameState = StateQuestionActive
	room.CurrentQuestion = 0

	g.broadcastRoom(room.Code, GameStartedMessage{
		Type:            "game_started",
		GameState:       room.GameState,
		CurrentQuestion: room.CurrentQuestion,
		TotalQuestions:  len(room.Questions),
	})

	logf(g.cfg, "GAMES: Game started in room %s", room.Code)
}

func (g *Gateway) handleShowQuestion(c *Client, msg ClientMessage) {
	room := g.hostRoom(c, msg.RoomCode)
	if room == nil {
		return
	}
	if room.GameState != StateQuestionActive && room.GameState != StateQuestionDisplayed {
		return
	}

	q := room.currentQ()
	if q == nil {
		return
	}

	// The value is drawn once per question, on first display; re-showing
	// after a hide keeps it.
	if !room.Asked[q.ID] {
		room.Asked[q.ID] = true
		room.CurrentValue = drawQuestionValue()
	}

	room.GameState = StateQuestionDisplayed

	number, total := room.CurrentQuestion+1, len(room.Questions)
	if room.isTieBreak() {
		number, total = room.TieBreak.AskedCount, room.TieBreak.MaxQuestions
	}

	g.broadcastRoom(room.Code, QuestionDisplayedMessage{
		Type:           "question_displayed",
		Question:       q,
		QuestionNumber: number,
		TotalQuestions: total,
		GameState:      room.GameState,
		QuestionValue:  room.CurrentValue,
		IsTieBreak:     room.isTieBreak(),
		TieBreak:       room.TieBreak,
	})
}

func (g *Gateway) handleHideQuestion(c *Client, msg ClientMessage) {
	room := g.hostRoom(c, msg.RoomCode)
	if room == nil || room.GameState != StateQuestionDisplayed {
		return
	}

	room.GameState = StateQuestionActive

	g.broadcastRoom(room.Code, QuestionHiddenMessage{
		Type:      "question_hidden",
		GameState: room.GameState,
	})
}

// ---- Buzzer arbitration ----

func (g *Gateway) handleActivateBuzzer(c *Client, msg ClientMessage) {
	room := g.hostRoom(c, msg.RoomCode)
	if room == nil {
		return
	}
	if room.GameState != StateQuestionActive && room.GameState != StateQuestionDisplayed {
		return
	}

	q := room.currentQ()
	if q == nil {
		return
	}
	if !room.Asked[q.ID] {
		room.Asked[q.ID] = true
		room.CurrentValue = drawQuestionValue()
	}

	room.Buzzer = Buzzer{Active: true}
	room.GameState = StateBuzzerActive

	for _, p := range room.Players {
		if p.Status == StatusEliminated {
			continue
		}
		if room.TieBreak != nil && !room.tieBreakCandidate(p.ID) {
			p.Status = StatusBlocked
			continue
		}
		p.Status = StatusWaiting
	}

	g.broadcastRoom(room.Code, BuzzerActivatedMessage{
		Type:            "buzzer_activated",
		GameState:       room.GameState,
		CurrentQuestion: room.CurrentQuestion,
		Players:         room.Players,
		IsTieBreak:      room.isTieBreak(),
		TieBreak:        room.TieBreak,
	})

	g.armTimer(room, timerBuzzer, g.cfg.buzzSeconds)
}

func (r *Room) eligibleToBuzz(p *Player) bool {
	if p == nil || p.Status == StatusEliminated || p.Status == StatusIncorrect {
		return false
	}
	if r.TieBreak != nil {
		return r.tieBreakCandidate(p.ID)
	}
	return true
}

// handlePressBuzzer is the arbitration point: intents reach this loop in
// arrival order, and the first press observed while the buzzer is open wins.
// Everything after that is a no-op, not an error.
func (g *Gateway) handlePressBuzzer(c *Client, msg ClientMessage) {
	room := g.registry.Get(msg.RoomCode)
	if room == nil || room.GameState != StateBuzzerActive {
		return
	}
	if !room.Buzzer.Active || room.Buzzer.HolderID != "" {
		return
	}

	player := room.player(c.id)
	if !room.eligibleToBuzz(player) {
		return
	}

	g.cancelTimer(room, timerBuzzer)

	room.Buzzer.HolderID = c.id
	room.Buzzer.Timestamp = time.Now()
	room.GameState = StateAnswering
	player.Status = StatusSelected

	for _, p := range room.Players {
		if p.ID == c.id || p.Status == StatusEliminated || p.Status == StatusIncorrect {
			continue
		}
		p.Status = StatusBlocked
	}

	number, total := room.CurrentQuestion+1, len(room.Questions)
	if room.isTieBreak() {
		number, total = room.TieBreak.AskedCount, room.TieBreak.MaxQuestions
	}
	g.sendTo(c, ShowQuestionMessage{
		Type:           "show_question",
		Question:       room.currentQ(),
		QuestionNumber: number,
		TotalQuestions: total,
	})

	g.broadcastRoom(room.Code, BuzzerPressedMessage{
		Type:       "buzzer_pressed",
		PlayerID:   c.id,
		PlayerName: player.Name,
		GameState:  room.GameState,
		Players:    room.Players,
		IsTieBreak: room.isTieBreak(),
		TieBreak:   room.TieBreak,
	})

	logf(g.cfg, "GAMES: %q pressed the buzzer in %s", player.Name, room.Code)

	g.armTimer(room, timerAnswer, g.cfg.answerSeconds)
}

func (g *Gateway) handleSubmitAnswer(c *Client, msg ClientMessage) {
	room := g.registry.Get(msg.RoomCode)
	if room == nil || room.GameState != StateAnswering || room.Buzzer.HolderID != c.id {
		return
	}
	if msg.Choice == nil {
		return
	}

	g.cancelTimer(room, timerAnswer)

	q := room.currentQ()
	player := room.player(c.id)
	if q == nil || player == nil {
		return
	}

	choice := *msg.Choice
	if choice == q.Correct {
		g.scoreCorrect(room, player, q, &choice)
		return
	}
	g.scoreIncorrect(room, player, q, &choice, false)
}

func (g *Gateway) scoreCorrect(room *Room, player *Player, q *Question, choice *int) {
	room.Scores[player.ID] += room.CurrentValue
	player.Score = room.Scores[player.ID]
	player.Status = StatusCorrect
	room.GameState = StateResults
	room.Buzzer = Buzzer{}

	correct := q.Correct
	g.broadcastRoom(room.Code, AnswerResultMessage{
		Type:          "answer_result",
		PlayerID:      player.ID,
		PlayerName:    player.Name,
		Answer:        choice,
		Correct:       &correct,
		CorrectAnswer: q.Options[q.Correct],
		IsCorrect:     true,
		Question:      q,
		Scores:        room.Scores,
		Players:       room.Players,
		GameState:     room.GameState,
		IsTieBreak:    room.isTieBreak(),
		TieBreak:      room.TieBreak,
	})

	logf(g.cfg, "GAMES: %q answered correctly in %s (+%d)", player.Name, room.Code, room.CurrentValue)

	if room.isTieBreak() {
		g.resolveTieBreakRound(room)
		return
	}

	g.armTimer(room, timerAdvance, max(1, int(g.cfg.revealDelay/time.Second)))
}

// scoreIncorrect applies the penalty (clamped at zero) and reopens the buzzer
// for everyone still eligible. The question is not over until someone answers
// correctly or the buzz window lapses unclaimed.
func (g *Gateway) scoreIncorrect(room *Room, player *Player, q *Question, choice *int, timeout bool) {
	if player != nil {
		room.Scores[player.ID] = max(0, room.Scores[player.ID]-5)
		player.Score = room.Scores[player.ID]
		player.Status = StatusIncorrect
	}

	room.Buzzer = Buzzer{Active: true}
	room.GameState = StateBuzzerActive

	for _, p := range room.Players {
		if p.Status != StatusBlocked && p.Status != StatusSelected {
			continue
		}
		if room.TieBreak != nil && !room.tieBreakCandidate(p.ID) {
			continue
		}
		p.Status = StatusWaiting
	}

	result := AnswerResultMessage{
		Type:       "answer_result",
		IsCorrect:  false,
		IsTimeout:  timeout,
		Answer:     choice,
		Question:   q,
		Scores:     room.Scores,
		Players:    room.Players,
		GameState:  room.GameState,
		IsTieBreak: room.isTieBreak(),
		TieBreak:   room.TieBreak,
	}
	if player != nil {
		result.PlayerID = player.ID
		result.PlayerName = player.Name
	}
	if choice != nil {
		correct := q.Correct
		result.Correct = &correct
		result.CorrectAnswer = q.Options[q.Correct]
	}
	g.broadcastRoom(room.Code, result)

	g.armTimer(room, timerBuzzer, g.cfg.buzzSeconds)
}

// ---- Countdown expiries ----

func (g *Gateway) buzzerExpired(room *Room) {
	if room.GameState != StateBuzzerActive {
		return
	}

	room.Buzzer.Active = false
	room.GameState = StateResults

	g.broadcastRoom(room.Code, AnswerResultMessage{
		Type:       "answer_result",
		IsTimeout:  true,
		Question:   room.currentQ(),
		Scores:     room.Scores,
		Players:    room.Players,
		GameState:  room.GameState,
		IsTieBreak: room.isTieBreak(),
		TieBreak:   room.TieBreak,
	})

	if room.isTieBreak() {
		g.resolveTieBreakRound(room)
	}
}

// answerExpired treats a lapsed answer window as a wrong answer from the
// holder. The holder may have disconnected in the meantime; the penalty is
// then skipped but the buzzer still reopens.
func (g *Gateway) answerExpired(room *Room) {
	if room.GameState != StateAnswering {
		return
	}

	player := room.player(room.Buzzer.HolderID)
	g.scoreIncorrect(room, player, room.currentQ(), nil, true)
}

func (g *Gateway) advanceExpired(room *Room) {
	if room.GameState != StateResults || room.TieBreak != nil {
		return
	}
	g.advanceQuestion(room)
}

// ---- Question advancement and stage end ----

func (g *Gateway) handleNextQuestion(c *Client, msg ClientMessage) {
	room := g.hostRoom(c, msg.RoomCode)
	if room == nil || room.TieBreak != nil {
		return
	}
	if room.GameState == StateWaiting || room.GameState == StateFinished {
		return
	}

	g.clearTimers(room)
	g.advanceQuestion(room)
}

func (g *Gateway) advanceQuestion(room *Room) {
	room.CurrentQuestion++
	room.CurrentValue = 0

	if room.CurrentQuestion < len(room.Questions) {
		room.Buzzer = Buzzer{}
		room.GameState = StateQuestionActive
		for _, p := range room.Players {
			if p.Status != StatusEliminated {
				p.Status = StatusWaiting
			}
		}

		g.broadcastRoom(room.Code, NextQuestionMessage{
			Type:            "next_question",
			CurrentQuestion: room.CurrentQuestion,
			GameState:       room.GameState,
			Players:         room.Players,
			TotalQuestions:  len(room.Questions),
		})
		return
	}

	// Stage is over.
	out := evaluateStage(room)
	if out.tie != nil {
		room.GameState = StateResults
		room.TieBreak = &TieBreak{
			Active:       true,
			Candidates:   out.tie.candidates,
			SlotsToFill:  out.tie.slotsToFill,
			MaxQuestions: g.cfg.tiebreakRounds,
		}

		g.broadcastRoom(room.Code, TieBreakReadyMessage{
			Type:        "tiebreak_ready",
			Stage:       room.Stage,
			Candidates:  out.tie.candidates,
			SlotsToFill: out.tie.slotsToFill,
		})
		return
	}

	g.finalizeStage(room, out)
}

func (g *Gateway) finalizeStage(room *Room, out stageOutcome) {
	g.clearTimers(room)

	room.GameState = StateFinished
	room.TieBreak = nil
	room.Buzzer = Buzzer{}

	qualified := make(map[string]bool, len(out.qualified))
	for _, id := range out.qualified {
		qualified[id] = true
	}

	for _, p := range room.Players {
		if p.Status == StatusEliminated {
			continue
		}
		switch {
		case qualified[p.ID] && room.Stage == StageFinale:
			p.Status = StatusWinner
		case qualified[p.ID]:
			p.Status = StatusQualified
		default:
			p.Status = StatusEliminated
		}
	}

	g.broadcastRoom(room.Code, StageFinishedMessage{
		Type:            "stage_finished",
		FinalRanking:    out.ranking,
		Scores:          room.Scores,
		Stage:           room.Stage,
		QualifiersCount: out.quota,
		Qualified:       out.qualified,
		Eliminated:      out.eliminated,
	})

	logf(g.cfg, "GAMES: Stage %s finished in %s (%d qualified)", room.Stage, room.Code, len(out.qualified))

	if room.Stage == StageFinale {
		g.broadcastRoom(room.Code, GameFinishedMessage{
			Type:         "game_finished",
			FinalRanking: out.ranking,
			Scores:       room.Scores,
			Stage:        room.Stage,
		})
	}
}

// ---- Tie-break sub-flow ----

func (g *Gateway) handleStartTieBreak(c *Client, msg ClientMessage) {
	room := g.hostRoom(c, msg.RoomCode)
	if room == nil {
		return
	}

	tb := room.TieBreak
	if tb == nil {
		g.sendError(c, "Aucun tie-break en attente")
		return
	}
	if tb.Question != nil {
		return
	}

	// The question count may only be set before the first sudden-death
	// question; even values are rounded up to stay odd.
	if msg.MaxQuestions > 0 && tb.AskedCount == 0 {
		n := msg.MaxQuestions
		if n%2 == 0 {
			n++
		}
		tb.MaxQuestions = n
	}

	q := g.drawTieBreakQuestion(room)
	if q == nil || tb.AskedCount >= tb.MaxQuestions {
		g.finalizeStage(room, resolveExhaustedTie(room, evaluateStage(room)))
		return
	}

	room.Asked[q.ID] = true
	tb.Question = q
	tb.AskedCount++
	room.Buzzer = Buzzer{}
	room.CurrentValue = drawQuestionValue()
	room.GameState = StateQuestionActive

	for _, p := range room.Players {
		if p.Status == StatusEliminated {
			continue
		}
		if room.tieBreakCandidate(p.ID) {
			p.Status = StatusWaiting
		} else {
			p.Status = StatusBlocked
		}
	}

	g.broadcastRoom(room.Code, NextQuestionMessage{
		Type:            "next_question",
		CurrentQuestion: room.CurrentQuestion,
		GameState:       room.GameState,
		Players:         room.Players,
		TotalQuestions:  len(room.Questions),
	})

	logf(g.cfg, "GAMES: Tie-break question %d/%d drawn in %s", tb.AskedCount, tb.MaxQuestions, room.Code)
}

// drawTieBreakQuestion takes the next unused question from any stage's set.
func (g *Gateway) drawTieBreakQuestion(room *Room) *Question {
	for _, stage := range stageOrder {
		for i := range room.StageSets[stage] {
			q := room.StageSets[stage][i]
			if !room.Asked[q.ID] {
				return &q
			}
		}
	}
	return nil
}

// resolveTieBreakRound re-runs the cutoff logic after a sudden-death question
// settles. Scores may have separated the candidates, shrunk the tie, or left
// it untouched.
func (g *Gateway) resolveTieBreakRound(room *Room) {
	tb := room.TieBreak
	tb.Question = nil

	out := evaluateStage(room)
	if out.tie == nil {
		g.finalizeStage(room, out)
		return
	}

	tb.Candidates = out.tie.candidates
	tb.SlotsToFill = out.tie.slotsToFill

	if tb.AskedCount >= tb.MaxQuestions {
		g.finalizeStage(room, resolveExhaustedTie(room, out))
		return
	}

	g.broadcastRoom(room.Code, TieBreakStillTiedMessage{
		Type:         "tiebreak_still_tied",
		Stage:        room.Stage,
		Candidates:   tb.Candidates,
		SlotsToFill:  tb.SlotsToFill,
		AskedCount:   tb.AskedCount,
		MaxQuestions: tb.MaxQuestions,
	})
}
