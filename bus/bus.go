// File: bus/bus.go
// Package bus implements command-event dispatch and the generic pub/sub channel.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package bus

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/plugbus/plugbus/api"
)

// Bus holds the command-event table and the generic subscription lists.
//
// The bus is single-goroutine by contract: every method must be called from
// the reactor goroutine. It carries no mutex on purpose; the ordering
// guarantees of dispatch depend on non-interleaved mutation.
type Bus struct {
	log    *zap.Logger
	events map[string]*commandEvent
	subs   map[string][]*subscription
	seq    uint64 // monotonic registration counter for stable tie-break
}

// New creates an empty bus. A nil logger is replaced with zap.NewNop().
func New(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		log:    log,
		events: make(map[string]*commandEvent),
		subs:   make(map[string][]*subscription),
	}
}

var _ api.Bus = (*Bus)(nil)

// CreateEvent registers a command event under a globally unique name.
func (b *Bus) CreateEvent(name, ownerModule string, handler api.CommandHandler) error {
	if _, ok := b.events[name]; ok {
		return api.ErrAlreadyExists
	}
	b.events[name] = &commandEvent{
		name:    name,
		owner:   ownerModule,
		handler: handler,
	}
	b.log.Debug("command event created",
		zap.String("event", name), zap.String("module", ownerModule))
	return nil
}

// DestroyEvent removes the event, its handler, and all its preprocessors.
func (b *Bus) DestroyEvent(name string) error {
	if _, ok := b.events[name]; !ok {
		return api.ErrNotFound
	}
	delete(b.events, name)
	b.log.Debug("command event destroyed", zap.String("event", name))
	return nil
}

// RegisterPreprocessor attaches a veto predicate to an existing command event.
func (b *Bus) RegisterPreprocessor(name, ownerModule string, pred api.PreprocessorFunc, priority int) error {
	ev, ok := b.events[name]
	if !ok {
		return api.ErrNotFound
	}
	b.seq++
	ev.preprocs = append(ev.preprocs, &preprocessor{
		owner:    ownerModule,
		priority: priority,
		seq:      b.seq,
		pred:     pred,
	})
	sortPreprocs(ev.preprocs)
	return nil
}

// UnregisterPreprocessor removes every preprocessor the module attached to
// the named event.
func (b *Bus) UnregisterPreprocessor(name, ownerModule string) error {
	ev, ok := b.events[name]
	if !ok {
		return api.ErrNotFound
	}
	kept := ev.preprocs[:0]
	removed := 0
	for _, p := range ev.preprocs {
		if p.owner == ownerModule {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	if removed == 0 {
		return api.ErrNotFound
	}
	ev.preprocs = kept
	return nil
}

// RegisterForEvent adds a generic subscription. The event name need not be
// declared anywhere; an unknown name is a valid logical channel.
func (b *Bus) RegisterForEvent(name, ownerModule string, cb api.SubscriberFunc, priority int) error {
	for _, s := range b.subs[name] {
		if s.owner == ownerModule {
			return api.ErrAlreadyRegistered
		}
	}
	b.seq++
	b.subs[name] = append(b.subs[name], &subscription{
		owner:    ownerModule,
		priority: priority,
		seq:      b.seq,
		cb:       cb,
	})
	sortSubs(b.subs[name])
	return nil
}

// UnregisterForEvent removes the module's subscription for the name.
func (b *Bus) UnregisterForEvent(name, ownerModule string) error {
	list, ok := b.subs[name]
	if !ok {
		return api.ErrNotFound
	}
	for i, s := range list {
		if s.owner == ownerModule {
			b.subs[name] = append(list[:i], list[i+1:]...)
			if len(b.subs[name]) == 0 {
				delete(b.subs, name)
			}
			return nil
		}
	}
	return api.ErrNotFound
}

// TriggerEvent runs every subscription for name in ascending-priority,
// registration-stable order and returns how many ran. No subscriptions is
// not an error.
func (b *Bus) TriggerEvent(name string, data any) int {
	list := b.subs[name]
	for _, s := range list {
		s.cb(data)
	}
	return len(list)
}

// DispatchIncoming splits raw socket input into a leading command token and
// remainder and dispatches to the matching command event. Unknown commands
// are a silent no-op; they may belong to other protocol layers. Reports
// whether the handler ran.
func (b *Bus) DispatchIncoming(conn api.Conn, raw []byte) bool {
	token, remainder := splitCommand(raw)
	if token == "" {
		return false
	}
	ev, ok := b.events[token]
	if !ok {
		b.log.Debug("unknown command token", zap.String("token", token))
		return false
	}
	for _, p := range ev.preprocs {
		if !p.pred(raw) {
			b.log.Debug("dispatch vetoed",
				zap.String("event", token), zap.String("module", p.owner))
			return false
		}
	}
	ev.handler(token, conn, remainder)
	return true
}

// UnregisterModule atomically removes every command event, preprocessor,
// and subscription owned by the module. This is the mandatory cascade
// teardown before the module's code handle is released.
func (b *Bus) UnregisterModule(ownerModule string) {
	events, preprocs, subs := 0, 0, 0
	for name, ev := range b.events {
		if ev.owner == ownerModule {
			delete(b.events, name)
			events++
			continue
		}
		kept := ev.preprocs[:0]
		for _, p := range ev.preprocs {
			if p.owner == ownerModule {
				preprocs++
				continue
			}
			kept = append(kept, p)
		}
		ev.preprocs = kept
	}
	for name, list := range b.subs {
		kept := list[:0]
		for _, s := range list {
			if s.owner == ownerModule {
				subs++
				continue
			}
			kept = append(kept, s)
		}
		if len(kept) == 0 {
			delete(b.subs, name)
		} else {
			b.subs[name] = kept
		}
	}
	b.log.Info("module unregistered from bus",
		zap.String("module", ownerModule),
		zap.Int("events", events),
		zap.Int("preprocessors", preprocs),
		zap.Int("subscriptions", subs))
}

// splitCommand strips trailing line endings and splits at the first run of
// whitespace. The remainder keeps its interior spacing.
func splitCommand(raw []byte) (token, remainder string) {
	data := strings.TrimRight(string(raw), " \t\r\n")
	if data == "" {
		return "", ""
	}
	if i := strings.IndexAny(data, " \t"); i >= 0 {
		return data[:i], strings.TrimLeft(data[i+1:], " \t")
	}
	return data, ""
}

func sortPreprocs(list []*preprocessor) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].priority != list[j].priority {
			return list[i].priority < list[j].priority
		}
		return list[i].seq < list[j].seq
	})
}

func sortSubs(list []*subscription) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].priority != list[j].priority {
			return list[i].priority < list[j].priority
		}
		return list[i].seq < list[j].seq
	})
}
