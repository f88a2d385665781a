package search

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lgngh/AcademicReads/papers"
)

const defaultDebounce = 300 * time.Millisecond

// Querier is the slice of the catalog the coordinator talks to.
// *papers.Service satisfies it.
type Querier interface {
	List() ([]papers.PaperView, error)
	Search(q string) ([]papers.PaperView, error)
}

type State int

const (
	// Idle: no input received yet.
	Idle State = iota
	// Pending: a query has been issued, its response is in flight.
	Pending
	// Settled: the displayed results match the most recent query.
	Settled
)

// Snapshot is the externally visible state of the coordinator.
type Snapshot struct {
	State     State
	Query     string
	RequestID uint64
	Results   []papers.PaperView
}

// Coordinator turns a stream of query-text change events into catalog
// queries. Keystrokes are coalesced: a query is only issued after a
// quiet period with no further input. Every issued query carries a
// monotonically increasing request id, and a response is applied only
// while its id is still the highest issued, so displayed results never
// go back in time no matter how responses are reordered on the wire.
type Coordinator struct {
	querier Querier
	delay   time.Duration

	// lastID is read on the response path and bumped on the issuing
	// path, which run on different goroutines.
	lastID uint64

	mu      sync.Mutex
	timer   *time.Timer
	latest  string
	snap    Snapshot
	updates chan Snapshot
}

func NewCoordinator(querier Querier, delay time.Duration) *Coordinator {
	if delay <= 0 {
		delay = defaultDebounce
	}

	return &Coordinator{
		querier: querier,
		delay:   delay,
		updates: make(chan Snapshot, 16),
	}
}

// Input records a query-text change event. It returns immediately:
// the query itself is issued after the quiet period, unless another
// event resets it first.
func (c *Coordinator) Input(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.latest = text
	if c.timer != nil {
		c.timer.Stop()
	}
	// The callback re-reads the latest text: a timer that fires while
	// being reset still issues the most recent input.
	c.timer = time.AfterFunc(c.delay, c.issueLatest)
}

// Stop cancels any pending quiet-period timer. In-flight responses are
// still discarded or applied by id as usual.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Snapshot returns the current displayed state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Updates signals every applied settle. Slow consumers miss
// intermediate snapshots, never the order of the applied ones.
func (c *Coordinator) Updates() <-chan Snapshot {
	return c.updates
}

func (c *Coordinator) issueLatest() {
	id := atomic.AddUint64(&c.lastID, 1)

	c.mu.Lock()
	text := c.latest
	c.snap = Snapshot{
		State:     Pending,
		Query:     text,
		RequestID: id,
		// Stale results stay visible while the query is in flight.
		Results: c.snap.Results,
	}
	c.mu.Unlock()

	go c.run(id, text)
}

func (c *Coordinator) run(id uint64, text string) {
	var results []papers.PaperView
	var err error

	// An empty query bypasses search for the unfiltered listing.
	if strings.TrimSpace(text) == "" {
		results, err = c.querier.List()
	} else {
		results, err = c.querier.Search(text)
	}

	c.apply(id, text, results, err)
}

func (c *Coordinator) apply(id uint64, text string, results []papers.PaperView, err error) {
	if err != nil {
		// Individual query failures are swallowed: the previous
		// settled results stay on display.
		return
	}

	c.mu.Lock()
	if atomic.LoadUint64(&c.lastID) != id {
		// A newer query has been issued, this response is stale.
		c.mu.Unlock()
		return
	}

	snap := Snapshot{
		State:     Settled,
		Query:     text,
		RequestID: id,
		Results:   results,
	}
	c.snap = snap
	c.mu.Unlock()

	select {
	case c.updates <- snap:
	default:
	}
}
