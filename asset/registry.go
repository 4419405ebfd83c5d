package asset

import (
	"fmt"

	"github.com/dawnengine/yage2/dawnerr"
	lru "github.com/hashicorp/golang-lru/v2"
)

// entry is one registry row: a header plus its current lifecycle state.
type entry struct {
	header Header
	state  State
}

// Registry is the hub's single source of truth for every known asset's
// header and lifecycle state. It is mutated only by the hub's own
// goroutine; other goroutines observe loaded objects only through the
// stable pointer inside a Handle, never through the Registry directly.
type Registry struct {
	entries map[ID]*entry
	// recentlyFreed caches the last few freed IR bodies so a free
	// immediately followed by a re-request (a common churn pattern
	// during level streaming) can skip the Read task. Bounded so it
	// never grows into a second copy of the whole asset set.
	recentlyFreed *lru.Cache[ID, IR]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	cache, _ := lru.New[ID, IR](64)
	return &Registry{entries: make(map[ID]*entry), recentlyFreed: cache}
}

// Put registers an asset's header, initializing its state to Empty. It
// is an error to register the same ID twice (NonUniqueID).
func (r *Registry) Put(h Header) error {
	if _, exists := r.entries[h.ID]; exists {
		return dawnerr.New(dawnerr.Validation, "Registry.Put", fmt.Errorf("non-unique asset id %q", h.ID))
	}
	r.entries[h.ID] = &entry{header: h, state: Empty()}
	return nil
}

// Header returns the header for id.
func (r *Registry) Header(id ID) (Header, error) {
	e, ok := r.entries[id]
	if !ok {
		return Header{}, dawnerr.New(dawnerr.Validation, "Registry.Header", fmt.Errorf("asset not found: %s", id))
	}
	return e.header, nil
}

// State returns the current lifecycle state for id.
func (r *Registry) State(id ID) (State, error) {
	e, ok := r.entries[id]
	if !ok {
		return State{}, dawnerr.New(dawnerr.Validation, "Registry.State", fmt.Errorf("asset not found: %s", id))
	}
	return e.state, nil
}

// SetState overwrites the lifecycle state for id.
func (r *Registry) SetState(id ID, s State) error {
	e, ok := r.entries[id]
	if !ok {
		return dawnerr.New(dawnerr.Validation, "Registry.SetState", fmt.Errorf("asset not found: %s", id))
	}
	e.state = s
	return nil
}

// RecallIR pops a cached IR body for id left over from a recent free, if
// any, so a re-request can skip straight to Load.
func (r *Registry) RecallIR(id ID) (IR, bool) {
	ir, ok := r.recentlyFreed.Get(id)
	if ok {
		r.recentlyFreed.Remove(id)
	}
	return ir, ok
}

// rememberFreed caches ir for id in case of an immediate re-request.
func (r *Registry) rememberFreed(id ID, ir IR) {
	if ir != nil {
		r.recentlyFreed.Add(id, ir)
	}
}

// Keys returns every registered AssetID, used by request-load-all.
func (r *Registry) Keys() []ID {
	ids := make([]ID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}

// LoadedWithSingleRef returns the IDs of every Loaded asset whose
// Handle's strong count has dropped to 1 (only the registry's own
// reference remains) — candidates for the hub's periodic free scan.
func (r *Registry) LoadedWithSingleRef() []ID {
	var ids []ID
	for id, e := range r.entries {
		if e.state.Kind == StateLoaded && e.state.Asset != nil && e.state.Asset.StrongCount() <= 1 {
			ids = append(ids, id)
		}
	}
	return ids
}
