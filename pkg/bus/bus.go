// Package bus carries state-change events from the memory worker to the UI.
// There is exactly one producer and one consumer; the bus is the only thing
// they share.
package bus

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Capacity bounds how many messages the bus holds before producers have to
// wait.
const Capacity = 100

// emitRetryWait is how long a producer backs off when the bus is full before
// trying again.
const emitRetryWait = 5 * time.Millisecond

// Message is one state-change event. The concrete variants below are the
// only implementations; consumers switch over them exhaustively.
type Message interface {
	isMessage()
}

// OnlineStatus reports whether we are attached to a process and reading its
// generator.
type OnlineStatus struct {
	Online bool
}

// MtiValue carries the generator's live index cursor. It is emitted on every
// successful read, even when the mirror cannot sync.
type MtiValue struct {
	Mti int
}

// NextPercentages carries the window of upcoming outputs reduced modulo 100.
type NextPercentages struct {
	Percentages []int
}

func (OnlineStatus) isMessage()    {}
func (MtiValue) isMessage()        {}
func (NextPercentages) isMessage() {}

// Bus is a bounded FIFO message queue.
type Bus struct {
	ch  chan Message
	Log *logrus.Entry
}

// New returns a bus with the fixed capacity.
func New(log *logrus.Entry) *Bus {
	return &Bus{
		ch:  make(chan Message, Capacity),
		Log: log,
	}
}

// Emit enqueues a message. When the bus is full it waits briefly and
// retries rather than dropping; it gives up only when stop closes. Returns
// false if the message was abandoned because of a stop.
func (b *Bus) Emit(msg Message, stop <-chan struct{}) bool {
	for {
		select {
		case b.ch <- msg:
			return true
		default:
		}

		b.Log.Debugf("bus full, waiting to emit %T", msg)
		select {
		case <-stop:
			return false
		case <-time.After(emitRetryWait):
		}
	}
}

// DrainBatch returns up to max queued messages without blocking, in FIFO
// order.
func (b *Bus) DrainBatch(max int) []Message {
	messages := []Message{}
	for len(messages) < max {
		select {
		case msg := <-b.ch:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
	return messages
}
