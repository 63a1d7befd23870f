package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/rvasant/kinara/internal/domain"
)

// Subscriber observes every state the engine produces.
type Subscriber func(domain.CartState)

// Engine is the reducer-style state machine owning the authoritative list of
// cart lines. Mutations are applied one at a time in submission order; derived
// totals are recomputed on every mutation. Every successful mutation triggers
// a best-effort write of the full line list to the snapshot store; a persist
// failure is logged and never rolls back the in-memory mutation.
type Engine struct {
	mu    sync.Mutex
	lines []domain.CartLine

	store  SnapshotStore
	logger *slog.Logger

	subs    map[int]Subscriber
	nextSub int
}

// NewEngine constructs the engine and rehydrates it from the last persisted
// snapshot. A corrupt snapshot is discarded (the slot is cleared) and the
// engine starts empty; startup never fails on bad cart data.
func NewEngine(ctx context.Context, store SnapshotStore, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		store:  store,
		logger: logger,
		subs:   make(map[int]Subscriber),
	}

	data, err := store.Load(ctx)
	if err != nil {
		logger.Warn("cart: failed to read snapshot, starting empty", slog.String("error", err.Error()))
		return e
	}
	if len(data) == 0 {
		return e
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil || !wellFormed(lines) {
		logger.Warn("cart: discarding corrupt snapshot", slog.Int("bytes", len(data)))
		if err := store.Clear(ctx); err != nil {
			logger.Warn("cart: failed to clear corrupt snapshot", slog.String("error", err.Error()))
		}
		return e
	}

	e.lines = lines
	return e
}

// wellFormed rejects snapshots and bulk loads whose lines violate the
// invariants the reducer maintains.
func wellFormed(lines []domain.CartLine) bool {
	seen := make(map[ItemKey]bool, len(lines))
	for _, l := range lines {
		if l.Validate() != nil {
			return false
		}
		k := KeyOf(l)
		if seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}

// State returns a copy of the current cart state with derived totals.
func (e *Engine) State() domain.CartState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) stateLocked() domain.CartState {
	lines := make([]domain.CartLine, len(e.lines))
	copy(lines, e.lines)
	total, count := domain.ComputeTotals(lines)
	return domain.CartState{Lines: lines, Total: total, ItemCount: count}
}

// Subscribe registers fn to observe every state produced by a mutation.
// fn runs after the engine lock is released and may call back into the
// engine. The returned func unsubscribes.
func (e *Engine) Subscribe(fn Subscriber) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// AddItem merges the line into an existing line with the same variant
// identity, or appends it. Returns the new state.
func (e *Engine) AddItem(ctx context.Context, line domain.CartLine) (domain.CartState, error) {
	if err := line.Validate(); err != nil {
		return e.State(), err
	}

	e.mu.Lock()
	key := KeyOf(line)
	merged := false
	for i := range e.lines {
		if key.Matches(e.lines[i]) {
			e.lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		e.lines = append(e.lines, line)
	}
	state, subs := e.commitLocked(ctx)
	e.mu.Unlock()

	notify(subs, state)
	return state, nil
}

// RemoveItem deletes the matching line. Removing an absent line is a no-op,
// not an error.
func (e *Engine) RemoveItem(ctx context.Context, key ItemKey) domain.CartState {
	e.mu.Lock()
	kept := e.lines[:0]
	removed := false
	for _, l := range e.lines {
		if key.Matches(l) {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	e.lines = kept

	if !removed {
		state := e.stateLocked()
		e.mu.Unlock()
		return state
	}
	state, subs := e.commitLocked(ctx)
	e.mu.Unlock()

	notify(subs, state)
	return state
}

// UpdateQuantity sets the quantity of the matching line; a quantity of zero
// or less deletes it. An unknown key leaves state unchanged and is logged as
// a non-fatal anomaly rather than surfaced as an error.
func (e *Engine) UpdateQuantity(ctx context.Context, key ItemKey, quantity int) domain.CartState {
	e.mu.Lock()
	idx := -1
	for i, l := range e.lines {
		if key.Matches(l) {
			idx = i
			break
		}
	}

	if idx == -1 {
		state := e.stateLocked()
		e.mu.Unlock()
		e.logger.Warn("cart: update for unknown line",
			slog.String("product_id", key.ProductID),
			slog.String("size", key.Normalize().Size),
			slog.String("color", key.Normalize().Color))
		return state
	}

	if quantity <= 0 {
		e.lines = append(e.lines[:idx], e.lines[idx+1:]...)
	} else {
		e.lines[idx].Quantity = quantity
	}
	state, subs := e.commitLocked(ctx)
	e.mu.Unlock()

	notify(subs, state)
	return state
}

// Clear resets the cart to the empty state.
func (e *Engine) Clear(ctx context.Context) domain.CartState {
	e.mu.Lock()
	e.lines = nil
	state, subs := e.commitLocked(ctx)
	e.mu.Unlock()

	notify(subs, state)
	return state
}

// Load bulk-replaces the cart from a persisted snapshot. A malformed line
// list is rejected and the current state returned unchanged.
func (e *Engine) Load(ctx context.Context, lines []domain.CartLine) (domain.CartState, error) {
	if lines == nil || !wellFormed(lines) {
		return e.State(), domain.ErrInvalidLineList
	}

	e.mu.Lock()
	e.lines = make([]domain.CartLine, len(lines))
	copy(e.lines, lines)
	state, subs := e.commitLocked(ctx)
	e.mu.Unlock()

	notify(subs, state)
	return state, nil
}

// commitLocked recomputes derived totals, persists the line list best-effort
// and snapshots the subscriber list. Callers hold e.mu and notify after
// releasing it.
func (e *Engine) commitLocked(ctx context.Context) (domain.CartState, []Subscriber) {
	state := e.stateLocked()

	lines := e.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		e.logger.Error("cart: failed to encode snapshot", slog.String("error", err.Error()))
	} else if err := e.store.Save(ctx, data); err != nil {
		// In-memory state stays the source of truth for this session.
		e.logger.Warn("cart: failed to persist snapshot", slog.String("error", err.Error()))
	}

	subs := make([]Subscriber, 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	return state, subs
}

// notify runs outside the engine lock so a subscriber may call back into the
// engine without deadlocking.
func notify(subs []Subscriber, state domain.CartState) {
	for _, fn := range subs {
		fn(state)
	}
}
