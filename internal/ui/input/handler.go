package input

import (
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"slices"
	"sort"

	"accessnav/internal/domain"
	"accessnav/internal/eventbus"
	"accessnav/internal/speech"
	"accessnav/internal/ui/input/types"
	"accessnav/internal/ui/logic"
)

// CatchAllRule is the name of the trailing rule that swallows keys while
// any surface is active
const CatchAllRule = "catch-all"

// Rule is a global entry of the dispatch table. Guard may be nil.
type Rule struct {
	Name     string
	Priority int
	Guard    func() bool
	Handle   func(ev types.Event) bool
}

type ruleKind int

const (
	ruleSurface ruleKind = iota
	ruleGlobal
)

type compiledRule struct {
	name     string
	priority int
	kind     ruleKind
	order    int
	surface  types.Surface
	guard    func() bool
	handle   func(ev types.Event) bool
}

// Handler routes key events through an ordered rule table. Every registered
// surface contributes one rule whose guard is "active and no earlier surface
// is active", so at most one surface sees a given key.
type Handler struct {
	registry  *Registry
	announcer speech.Announcer
	bus       eventbus.EventBus

	globals  []Rule
	table    []compiledRule
	builtFor int // registry size the table was compiled for
	dirty    bool

	catchAll   bool
	dedupe     bool
	delivered  logic.FrameGuard
	lastResult bool
}

// Option configures a Handler
type Option func(*Handler)

// WithEventBus publishes dispatch faults on bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(h *Handler) { h.bus = bus }
}

// WithCatchAll toggles the trailing catch-all rule (on by default)
func WithCatchAll(enabled bool) Option {
	return func(h *Handler) { h.catchAll = enabled }
}

// WithDeliveryGuard makes DispatchDelivery drop a repeated delivery id
// (on by default)
func WithDeliveryGuard(enabled bool) Option {
	return func(h *Handler) { h.dedupe = enabled }
}

// New creates a dispatcher over registry
func New(registry *Registry, announcer speech.Announcer, opts ...Option) *Handler {
	if announcer == nil {
		announcer = speech.Discard
	}
	h := &Handler{
		registry:   registry,
		announcer:  announcer,
		catchAll:   true,
		dedupe:     true,
		dirty:      true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Registry returns the surface registry the handler dispatches to
func (h *Handler) Registry() *Registry {
	return h.registry
}

// AddRule adds a global rule. At equal priority surface rules run first,
// then global rules in the order they were added.
func (h *Handler) AddRule(rule Rule) error {
	if rule.Name == "" {
		return errors.New("rule name is required")
	}
	if rule.Handle == nil {
		return fmt.Errorf("rule %s has no handler", rule.Name)
	}
	h.globals = append(h.globals, rule)
	h.dirty = true
	return nil
}

// Rules returns the rule names in the order they are evaluated
func (h *Handler) Rules() []string {
	h.compile()
	names := make([]string, 0, len(h.table)+1)
	for _, r := range h.table {
		names = append(names, r.name)
	}
	if h.catchAll {
		names = append(names, CatchAllRule)
	}
	return names
}

// Dispatch offers ev to the rule table and reports whether it was consumed.
// An unconsumed event belongs to the host.
func (h *Handler) Dispatch(ev types.Event) bool {
	h.compile()

	var faulted []int // surface rules whose guard panicked on this event
	surfaceClaimed := false
	for i := range h.table {
		r := &h.table[i]
		switch r.kind {
		case ruleSurface:
			if surfaceClaimed {
				continue
			}
			matched, ok := h.check(r, ev)
			if !ok {
				faulted = append(faulted, i)
			}
			if !matched {
				continue
			}
			surfaceClaimed = true
		case ruleGlobal:
			if r.guard != nil {
				if matched, _ := h.check(r, ev); !matched {
					continue
				}
			}
		}

		if h.invoke(r, ev) {
			return true
		}
	}

	return h.catchAll && h.anyActive(ev, faulted)
}

// DispatchDelivery is Dispatch for hosts whose event pump may hand over the
// same delivery more than once. A repeated id returns the first outcome with
// fresh false and runs no rule. Equal events with distinct ids are separate
// key presses and are all dispatched.
func (h *Handler) DispatchDelivery(id uint64, ev types.Event) (consumed, fresh bool) {
	if h.dedupe && !h.delivered.Enter(id) {
		return h.lastResult, false
	}
	h.lastResult = h.Dispatch(ev)
	return h.lastResult, true
}

func (h *Handler) compile() {
	if !h.dirty && h.builtFor == h.registry.Len() {
		return
	}

	regs := h.registry.Registrations()
	table := make([]compiledRule, 0, len(regs)+len(h.globals))
	for i, reg := range regs {
		s := reg.Surface
		table = append(table, compiledRule{
			name:     s.Name(),
			priority: reg.Priority,
			kind:     ruleSurface,
			order:    i,
			surface:  s,
			guard:    s.IsActive,
			handle:   s.HandleKey,
		})
	}
	for i, g := range h.globals {
		table = append(table, compiledRule{
			name:     g.Name,
			priority: g.Priority,
			kind:     ruleGlobal,
			order:    i,
			guard:    g.Guard,
			handle:   g.Handle,
		})
	}
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].priority != table[j].priority {
			return table[i].priority < table[j].priority
		}
		if table[i].kind != table[j].kind {
			return table[i].kind < table[j].kind
		}
		return table[i].order < table[j].order
	})

	h.table = table
	h.builtFor = len(regs)
	h.dirty = false
}

// check evaluates a guard. A panicking guard counts as not matching and ok
// is false.
func (h *Handler) check(r *compiledRule, ev types.Event) (matched, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			h.fault(r.name, ev, rec)
			matched, ok = false, false
		}
	}()
	return r.guard(), true
}

// invoke runs a handler. A panicking handler has not consumed the event and
// its surface, if it can snapshot itself, is rolled back.
func (h *Handler) invoke(r *compiledRule, ev types.Event) (consumed bool) {
	snapper, canSnap := r.surface.(types.Snapshotter)
	var snap any
	if canSnap {
		snap = snapper.Snapshot()
	}

	defer func() {
		if rec := recover(); rec != nil {
			if canSnap {
				h.restore(r.name, snapper, snap)
			}
			h.fault(r.name, ev, rec)
			consumed = false
		}
	}()
	return r.handle(ev)
}

func (h *Handler) restore(name string, s types.Snapshotter, snap any) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Input: restoring %s after a fault failed: %v", name, rec)
		}
	}()
	s.Restore(snap)
}

// anyActive re-reads the surface flags for the catch-all. Guards that already
// panicked on this event are not asked again.
func (h *Handler) anyActive(ev types.Event, faulted []int) bool {
	for i := range h.table {
		r := &h.table[i]
		if r.kind != ruleSurface || slices.Contains(faulted, i) {
			continue
		}
		if matched, _ := h.check(r, ev); matched {
			return true
		}
	}
	return false
}

func (h *Handler) fault(name string, ev types.Event, rec interface{}) {
	log.Printf("Input: PANIC in %s handling %q: %v\n%s", name, ev.String(), rec, debug.Stack())
	if h.bus != nil {
		h.bus.Publish(eventbus.DispatchFaultEvent{
			Rule:  name,
			Key:   ev.String(),
			Cause: fmt.Sprint(rec),
		})
	}
	h.announcer.Speak(fmt.Sprintf("Error in %s, action cancelled", name), domain.PriorityHigh)
}
