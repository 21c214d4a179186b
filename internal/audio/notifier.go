package audio

import (
	"context"
	"log"
	"sync"
)

// Notifier queues cues for a background player. Notify never blocks: when
// the queue is full the cue is dropped.
type Notifier struct {
	player Player
	queue  chan Cue
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	dropped int
}

// NewNotifier starts a Notifier with a queue of the given size.
func NewNotifier(player Player, size int) *Notifier {
	if size < 1 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	n := &Notifier{
		player: player,
		queue:  make(chan Cue, size),
		ctx:    ctx,
		cancel: cancel,
	}
	n.wg.Add(1)
	go n.run()
	return n
}

// Notify enqueues cue and reports whether it was accepted.
func (n *Notifier) Notify(cue Cue) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return false
	}

	select {
	case n.queue <- cue:
		return true
	default:
		n.dropped++
		return false
	}
}

// Dropped returns how many cues were discarded because the queue was full.
func (n *Notifier) Dropped() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.dropped
}

// Close stops accepting cues, abandons the ones still queued and waits for
// the cue in flight to finish or be cancelled.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.queue)
	n.mu.Unlock()

	n.cancel()
	n.wg.Wait()
}

func (n *Notifier) run() {
	defer n.wg.Done()
	for cue := range n.queue {
		if n.ctx.Err() != nil {
			continue
		}
		if err := n.player.Play(n.ctx, cue); err != nil {
			log.Printf("audio: %s cue failed: %v", cue, err)
		}
	}
}

// Discard is a Player that plays nothing.
type Discard struct{}

// Play implements Player.
func (Discard) Play(context.Context, Cue) error { return nil }
