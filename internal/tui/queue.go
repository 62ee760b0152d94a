package tui

import (
	"context"
	"sync"

	"github.com/guilhermegouw/tabhome/internal/debug"
	"github.com/guilhermegouw/tabhome/internal/home"
)

// queueSize bounds intents waiting for the controller.
const queueSize = 64

// IntentSender accepts intents for dispatch. *home.Controller satisfies it.
type IntentSender interface {
	Send(intent home.Intent) bool
}

// intentQueue decouples Update from the controller: Update must never
// block, while the controller's input is unbuffered.
type intentQueue struct {
	ch     chan home.Intent
	sender IntentSender
	wg     sync.WaitGroup
}

func newIntentQueue(sender IntentSender) *intentQueue {
	return &intentQueue{
		ch:     make(chan home.Intent, queueSize),
		sender: sender,
	}
}

// Enqueue adds intent without blocking. It reports false when the queue
// is full.
func (q *intentQueue) Enqueue(intent home.Intent) bool {
	select {
	case q.ch <- intent:
		return true
	default:
		return false
	}
}

// Start drains the queue into the sender until ctx is cancelled.
func (q *intentQueue) Start(ctx context.Context) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case intent := <-q.ch:
				if !q.sender.Send(intent) {
					debug.Log("queue: controller stopped, dropping %T", intent)
					return
				}
			}
		}
	}()
}

// Wait blocks until the drain goroutine exits.
func (q *intentQueue) Wait() {
	q.wg.Wait()
}
