package uwacodec

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Factory constructs a zero-valued container for a registered message's
// decoded field values. Most callers can ignore this and work with the
// []any values DecodeByID returns directly; it exists for integrators that
// want a typed struct back.
type Factory func() any

type registryEntry struct {
	descriptor MessageDescriptor
	factory    Factory
}

// Registry is a process-wide mapping from numeric message id to
// MessageDescriptor, used by mode 2/3 to recover a schema from a decoded
// id. Registration is expected at program init; reads (Lookup,
// DecodeByID) are safe under concurrent use at any time, via an
// immutable snapshot swapped on write.
type Registry struct {
	mu       sync.Mutex // serializes writers only; readers never block on it
	snapshot atomic.Pointer[map[int]registryEntry]
}

// NewRegistry returns an empty registry ready for concurrent use.
func NewRegistry() *Registry {
	r := &Registry{}
	empty := map[int]registryEntry{}
	r.snapshot.Store(&empty)
	return r
}

// Register associates id with descriptor and factory. Re-registering the
// same id with an identical descriptor is a no-op that succeeds.
// Registering a different descriptor under an existing id fails
// ErrInvalidSchema.
func (r *Registry) Register(descriptor MessageDescriptor, factory Factory) error {
	if descriptor.ID < 0 || descriptor.ID > varidMax {
		return wrapf(ErrInvalidSchema, "registry: message id %d out of range", descriptor.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.snapshot.Load()
	if existing, ok := current[descriptor.ID]; ok {
		if descriptorsEqual(existing.descriptor, descriptor) {
			return nil
		}
		return wrapf(ErrInvalidSchema, "registry: id %d already registered with a different descriptor", descriptor.ID)
	}

	next := make(map[int]registryEntry, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[descriptor.ID] = registryEntry{descriptor: descriptor, factory: factory}
	r.snapshot.Store(&next)
	return nil
}

// Lookup returns the descriptor registered under id, if any.
func (r *Registry) Lookup(id int) (MessageDescriptor, bool) {
	m := *r.snapshot.Load()
	entry, ok := m[id]
	return entry.descriptor, ok
}

// DecodeByID reads the leading varid off wire, looks up its descriptor in
// the registry, and decodes the remaining bytes as a mode 2 message. It
// fails ErrUnknownMessageID if the id has no registry entry.
func (r *Registry) DecodeByID(wire []byte) (DecodedMessage, error) {
	id, n, err := readVarid(wire)
	if err != nil {
		return DecodedMessage{}, err
	}

	descriptor, ok := r.Lookup(id)
	if !ok {
		return DecodedMessage{}, wrapf(ErrUnknownMessageID, "no registry entry for id %d", id)
	}

	values, err := DecodeBody(descriptor, wire[n:])
	if err != nil {
		return DecodedMessage{}, err
	}
	return DecodedMessage{ID: id, Values: values}, nil
}

// descriptorsEqual reports whether two descriptors are wire-equivalent:
// same id, max_bytes, and ordered field list.
func descriptorsEqual(a, b MessageDescriptor) bool {
	return a.ID == b.ID && a.MaxBytes == b.MaxBytes && reflect.DeepEqual(a.Fields, b.Fields)
}
