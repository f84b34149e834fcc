package main

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	sseChannelBuffer = 16
	sseHeartbeat     = 30 * time.Second
)

// client represents a single SSE connection subscribed to one
// synthesis job's progress stream.
type client struct {
	ch    chan string
	jobID string
}

// Broadcaster manages SSE clients grouped by synthesis job id. It is the
// teacher's collaborative-grid Broadcaster, repurposed per SPEC_FULL.md:
// spec.md §5 lets the driver "dispatch synthesis to a worker pool to keep
// a request-serving thread responsive"; this is the channel a caller
// watches while that worker runs.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[*client]struct{}),
	}
}

// Register adds a client for a job and returns it.
func (b *Broadcaster) Register(jobID string) *client {
	c := &client{
		ch:    make(chan string, sseChannelBuffer),
		jobID: jobID,
	}
	b.mu.Lock()
	b.clients[c] = struct{}{}
	b.mu.Unlock()
	return c
}

// Unregister removes a client and closes its channel.
func (b *Broadcaster) Unregister(c *client) {
	b.mu.Lock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.ch)
	}
	b.mu.Unlock()
}

// Broadcast sends a message to all clients watching jobID.
func (b *Broadcaster) Broadcast(jobID, data string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for c := range b.clients {
		if c.jobID == jobID {
			select {
			case c.ch <- data:
			default:
				// Channel full, skip slow client.
			}
		}
	}
}

// ClientCount returns the number of connected clients for a job.
func (b *Broadcaster) ClientCount(jobID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for c := range b.clients {
		if c.jobID == jobID {
			n++
		}
	}
	return n
}

// ServeSSE handles an SSE connection for a synthesis job.
func (b *Broadcaster) ServeSSE(w http.ResponseWriter, r *http.Request, jobID string, onConnect func(c *client), onDisconnect func()) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	c := b.Register(jobID)
	defer func() {
		b.Unregister(c)
		if onDisconnect != nil {
			onDisconnect()
		}
	}()

	if onConnect != nil {
		onConnect(c)
	}

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-c.ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
