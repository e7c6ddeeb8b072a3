package sim

import "sync/atomic"

// Message is one encoded record received from the network.
type Message struct {
	ActorID   int32
	Timestamp int64 // ms; snapshot time, input frames carry their own
	Data      []byte
}

// Inbox hands messages from network goroutines to the simulation goroutine.
// Push may be called from any goroutine; draining happens only inside the
// tick, which is what serializes History.Record against History.Get.
type Inbox struct {
	ch      chan Message
	dropped atomic.Int64
}

func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = 1
	}
	return &Inbox{ch: make(chan Message, size)}
}

// Push enqueues m without blocking. A full inbox drops the message.
func (in *Inbox) Push(m Message) bool {
	select {
	case in.ch <- m:
		return true
	default:
		in.dropped.Add(1)
		return false
	}
}

// Dropped returns the number of messages lost to a full inbox.
func (in *Inbox) Dropped() int64 { return in.dropped.Load() }

// Len returns the number of queued messages.
func (in *Inbox) Len() int { return len(in.ch) }

// drain hands at most max queued messages to fn. max <= 0 drains everything
// queued at call time.
func (in *Inbox) drain(max int, fn func(Message)) int {
	if max <= 0 {
		max = len(in.ch)
	}
	n := 0
	for n < max {
		select {
		case m := <-in.ch:
			fn(m)
			n++
		default:
			return n
		}
	}
	return n
}
