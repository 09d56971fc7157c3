/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"dirpx.dev/tfx/apis"
	"dirpx.dev/tfx/config"
	"dirpx.dev/tfx/resolver"
	uref "dirpx.dev/tfx/utils/reflect"
)

var (
	// ErrEmptyName is returned when an empty function name is provided.
	ErrEmptyName = errors.New("tfx(registry): empty function name provided")
	// ErrNilImpl is returned when a nil implementation is provided.
	ErrNilImpl = errors.New("tfx(registry): nil implementation provided")
	// ErrNotFunc is returned when the implementation is not a Go func.
	ErrNotFunc = errors.New("tfx(registry): implementation is not a func")
	// ErrZeroDescriptor is returned when a key contains a zero descriptor.
	ErrZeroDescriptor = errors.New("tfx(registry): key contains a zero descriptor")
	// ErrKeyTooLong is returned when a key has more descriptors than MaxArity.
	ErrKeyTooLong = errors.New("tfx(registry): key exceeds max arity")
	// ErrSealed indicates an attempt to register in a sealed registry.
	ErrSealed = errors.New("tfx(registry): sealed registry")
)

// Option configures a registry built by New.
type Option func(*registry)

// WithLogger sets the logger used for registration events.
// A nil logger keeps the default (slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(r *registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New constructs a Registry that derives argument keys with res.
// A nil res uses resolver.Default(). A non-positive cfg.MaxArity uses
// config.DefaultMaxArity.
func New(cfg apis.Config, res apis.Resolver, opts ...Option) apis.Registry {
	if cfg.MaxArity <= 0 {
		cfg.MaxArity = config.DefaultMaxArity
	}
	if res == nil {
		res = resolver.Default()
	}
	r := &registry{
		cfg:    cfg,
		res:    res,
		log:    slog.Default(),
		tables: make(map[string]*table),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// registry is the default Registry: a name -> table map, each table guarded
// by its own lock.
type registry struct {
	// cfg is the configuration used for validation and key derivation.
	cfg apis.Config
	// res derives argument keys in Call.
	res apis.Resolver
	// log receives registration events.
	log *slog.Logger
	// mu guards the tables map, not the tables themselves.
	mu     sync.RWMutex
	tables map[string]*table
	// sealed, when true, makes Register fail.
	sealed atomic.Bool
	// seq numbers registrations for stable snapshot ordering.
	seq atomic.Uint64
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Register inserts or replaces the specialization (name, key).
func (r *registry) Register(name string, key apis.Key, impl any) error {
	// Validate inputs early.
	if r.Sealed() {
		return ErrSealed
	}
	if name == "" {
		return ErrEmptyName
	}
	if impl == nil {
		return ErrNilImpl
	}
	fv := reflect.ValueOf(impl)
	if fv.Kind() != reflect.Func {
		return fmt.Errorf("%w: got %s", ErrNotFunc, uref.TypeName(fv.Type()))
	}
	if fv.IsNil() {
		return ErrNilImpl
	}
	if key.HasZero() {
		return ErrZeroDescriptor
	}
	if key.Len() > r.cfg.MaxArity {
		return fmt.Errorf("%w: %d descriptors, max %d", ErrKeyTooLong, key.Len(), r.cfg.MaxArity)
	}
	sig, err := uref.SignatureOf(fv.Type())
	if err != nil {
		return err
	}

	replaced := r.put(name, &entry{key: key, impl: impl, fn: fv, sig: sig, seq: r.seq.Add(1)})
	if replaced {
		if r.cfg.WarnOnReplace {
			r.log.Warn("Replacing template specialization.", "name", name, "key", key.String())
		}
		return nil
	}
	r.log.Debug("Registering template specialization.", "name", name, "key", key.String())
	return nil
}

// Lookup returns the implementation registered under the exact key.
func (r *registry) Lookup(name string, key apis.Key) (any, error) {
	e, err := r.find(name, key)
	if err != nil {
		return nil, err
	}
	return e.impl, nil
}

// Call dispatches on the runtime types of args.
func (r *registry) Call(name string, args ...any) (any, error) {
	key, err := r.res.Key(args, r.cfg)
	if err != nil {
		return nil, &apis.NotFoundError{Name: name, Key: r.describe(args)}
	}
	e, err := r.find(name, key)
	if err != nil {
		return nil, err
	}
	return e.invoke(name, args)
}

// CallKey invokes the implementation registered under exactly key with args.
// The key is not derived from args; arity and argument types are still
// checked against the implementation.
func (r *registry) CallKey(name string, key apis.Key, args ...any) (any, error) {
	e, err := r.find(name, key)
	if err != nil {
		return nil, err
	}
	return e.invoke(name, args)
}

// CallAs dispatches a zero-argument implementation on explicit types.
func (r *registry) CallAs(name string, types ...apis.Descriptor) (any, error) {
	e, err := r.find(name, apis.Returns(types...))
	if err != nil {
		return nil, err
	}
	return e.invoke(name, nil)
}

// Functions returns the registered function names in lexicographic order.
func (r *registry) Functions() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.tables))
	for name, t := range r.tables {
		if t.len() > 0 {
			names = append(names, name)
		}
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Entries returns a snapshot sorted by name, then key. Keys that render
// alike (distinct types with equal names) keep registration order.
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	var snap []named
	for name, t := range r.tables {
		snap = t.appendEntries(snap, name)
	}
	r.mu.RUnlock()

	slices.SortFunc(snap, func(a, b named) int {
		if c := strings.Compare(a.name, b.name); c != 0 {
			return c
		}
		if a.key.Mode() != b.key.Mode() {
			return int(a.key.Mode()) - int(b.key.Mode())
		}
		if c := strings.Compare(a.key.String(), b.key.String()); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	out := make([]apis.Entry, len(snap))
	for i, n := range snap {
		out[i] = apis.Entry{Name: n.name, Key: n.key, Impl: n.impl}
	}
	return out
}

// Count returns the number of registered specializations.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, t := range r.tables {
		n += t.len()
	}
	return n
}

// Reset clears all registered functions. It does not unseal the registry.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = make(map[string]*table)
}

// Sealed reports whether the registry is sealed.
func (r *registry) Sealed() bool { return r.sealed.Load() }

// Seal prevents further registrations. It is idempotent and safe for concurrent use.
// Returns true if this call changed the state from unsealed to sealed.
func (r *registry) Seal() bool { return !r.sealed.Swap(true) }

// table returns the dispatch table of name, or nil.
func (r *registry) table(name string) *table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tables[name]
}

// put stores e in the table of name, creating the table on first use. The
// tables lock is held across the insert so a concurrent Reset cannot leave
// the entry in a detached table.
func (r *registry) put(name string, e *entry) bool {
	r.mu.RLock()
	if t := r.tables[name]; t != nil {
		defer r.mu.RUnlock()
		return t.put(e)
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under lock in case another goroutine created it meanwhile.
	t := r.tables[name]
	if t == nil {
		t = &table{buckets: make(map[string][]*entry)}
		r.tables[name] = t
	}
	return t.put(e)
}

// find resolves (name, key) or returns a *apis.NotFoundError.
func (r *registry) find(name string, key apis.Key) (*entry, error) {
	if t := r.table(name); t != nil {
		if e := t.get(key); e != nil {
			return e, nil
		}
	}
	return nil, &apis.NotFoundError{Name: name, Key: key}
}

// describe builds a best-effort key for error reports; unresolvable
// arguments show up as zero descriptors.
func (r *registry) describe(args []any) apis.Key {
	types := make([]apis.Descriptor, len(args))
	for i, a := range args {
		types[i], _ = r.res.Resolve(a, r.cfg)
	}
	return apis.Args(types...)
}

// table holds the specializations of one function name. Keys are hashed by
// their rendering; entries in a bucket are told apart by exact descriptor
// equality, so distinct types with equal names never collide.
type table struct {
	mu      sync.RWMutex
	buckets map[string][]*entry
	n       int
}

// put inserts e, replacing an entry with an equal key. It reports whether a
// replacement happened.
func (t *table) put(e *entry) bool {
	h := e.key.String()

	t.mu.Lock()
	defer t.mu.Unlock()

	bucket := t.buckets[h]
	for i, old := range bucket {
		if old.key.Equal(e.key) {
			bucket[i] = e
			return true
		}
	}
	t.buckets[h] = append(bucket, e)
	t.n++
	return false
}

// get returns the entry with exactly key, or nil.
func (t *table) get(key apis.Key) *entry {
	h := key.String()

	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, e := range t.buckets[h] {
		if e.key.Equal(key) {
			return e
		}
	}
	return nil
}

func (t *table) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.n
}

// named is an entry paired with its function name for snapshots.
type named struct {
	name string
	*entry
}

func (t *table) appendEntries(out []named, name string) []named {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, bucket := range t.buckets {
		for _, e := range bucket {
			out = append(out, named{name: name, entry: e})
		}
	}
	return out
}
