/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"sync"
	"time"
)

type timerKind string

const (
	timerBuzzer  timerKind = "buzzer"
	timerAnswer  timerKind = "answer"
	timerAdvance timerKind = "advance" // internal, never broadcast
)

// countdown ticks once per interval, reporting the remaining count back into
// the Gateway loop, and reports zero exactly once unless cancelled first.
type countdown struct {
	kind     timerKind
	roomCode string
	seconds  int

	stop     chan struct{}
	stopOnce sync.Once
}

// timerEvent is what a countdown goroutine feeds back into the Gateway loop.
// A remaining count of zero means expiry.
type timerEvent struct {
	timer     *countdown
	remaining int
}

func newCountdown(kind timerKind, roomCode string, seconds int) *countdown {
	return &countdown{
		kind:     kind,
		roomCode: roomCode,
		seconds:  seconds,
		stop:     make(chan struct{}),
	}
}

// cancel is safe to call more than once, and after expiry. A tick already
// queued when cancel lands is discarded by the Gateway loop, which only acts
// on events from the countdown currently armed for that room and kind.
func (c *countdown) cancel() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *countdown) run(events chan<- timerEvent, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	remaining := c.seconds
	for remaining > 0 {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			remaining--
			select {
			case events <- timerEvent{timer: c, remaining: remaining}:
			case <-c.stop:
				return
			}
		}
	}
}

// armTimer replaces any countdown of the same kind on the room. The buzzer
// and answer kinds broadcast their initial value immediately, matching the
// tick updates clients receive afterwards.
func (g *Gateway) armTimer(room *Room, kind timerKind, seconds int) {
	g.cancelTimer(room, kind)

	c := newCountdown(kind, room.Code, seconds)
	room.timers[kind] = c

	if kind != timerAdvance {
		g.broadcastRoom(room.Code, TimerUpdateMessage{
			Type:      "timer_update",
			Kind:      kind,
			Remaining: seconds,
		})
	}

	go c.run(g.timerEvents, g.tickInterval)
}

func (g *Gateway) cancelTimer(room *Room, kind timerKind) {
	if c, ok := room.timers[kind]; ok {
		c.cancel()
		delete(room.timers, kind)
	}
}

func (g *Gateway) clearTimers(room *Room) {
	for kind := range room.timers {
		g.cancelTimer(room, kind)
	}
}

// handleTimerEvent fires from the Gateway loop for every queued tick. Stale
// events from cancelled or superseded countdowns are dropped here.
func (g *Gateway) handleTimerEvent(ev timerEvent) {
	room := g.registry.Get(ev.timer.roomCode)
	if room == nil || room.timers[ev.timer.kind] != ev.timer {
		return
	}

	if ev.remaining > 0 {
		if ev.timer.kind != timerAdvance {
			g.broadcastRoom(room.Code, TimerUpdateMessage{
				Type:      "timer_update",
				Kind:      ev.timer.kind,
				Remaining: ev.remaining,
			})
		}
		return
	}

	delete(room.timers, ev.timer.kind)

	switch ev.timer.kind {
	case timerBuzzer:
		g.buzzerExpired(room)
	case timerAnswer:
		g.answerExpired(room)
	case timerAdvance:
		g.advanceExpired(room)
	}
}
