package jsv

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/signadot/jsvar/debug"
)

// Ref names a node in a Store's arena. The zero Ref names no node.
type Ref uint32

// NoRef is the zero Ref.
const NoRef Ref = 0

type node struct {
	kind   Kind
	inUse  bool
	intKey bool
	cost   int32
	refs   uint32
	locks  uint32

	i  int64
	f  float64
	s  string
	fn Callable

	// containers: first and last binding.
	// bindings: first is the bound value.
	first, last Ref
	// bindings: siblings. Free nodes chain through next.
	next, prev Ref
	// bindings: the container the binding is linked into.
	owner Ref
}

// Spec holds the runtime specification for a Store.
type Spec struct {
	Config *Config
	Log    *slog.Logger
}

// Store is a bounded arena of value nodes.
//
// A Store is not safe for concurrent use.
type Store struct {
	cfg   StoreConfig
	log   *slog.Logger
	nodes []node

	firstFree Ref
	used      int
	live      int

	work []Ref
}

// Stats reports arena usage.
type Stats struct {
	Capacity int // units
	Used     int // units
	Nodes    int // live nodes
	Free     int // units
}

// New creates a Store. A nil spec, or nil fields in it, select defaults.
func New(spec *Spec) *Store {
	if spec == nil {
		spec = &Spec{}
	}
	log := spec.Log
	if log == nil {
		log = DefaultLogger()
	}
	cfg := clampStoreConfig(spec.Config.storeConfig(), log)
	s := &Store{
		cfg:   cfg,
		log:   log,
		nodes: make([]node, cfg.Capacity+1),
	}
	for i := 1; i < len(s.nodes)-1; i++ {
		s.nodes[i].next = Ref(i + 1)
	}
	if cfg.Capacity > 0 {
		s.firstFree = 1
	}
	return s
}

// clampStoreConfig brings a configuration which did not go through
// Validate into range.
func clampStoreConfig(cfg StoreConfig, log *slog.Logger) StoreConfig {
	if cfg.Capacity < 0 {
		cfg.Capacity = 0
	}
	if cfg.Capacity > maxCapacity {
		log.Warn("store capacity clamped", "capacity", cfg.Capacity, "max", maxCapacity)
		cfg.Capacity = maxCapacity
	}
	if cfg.FragmentSize <= 0 {
		cfg.FragmentSize = DefaultFragmentSize
	}
	return cfg
}

// DefaultLogger returns the logger used when a Spec carries none: JSON to
// stderr, at debug level when DEBUG is set.
func DefaultLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(),
	}))
}

func slogLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func (s *Store) Stats() Stats {
	return Stats{
		Capacity: s.cfg.Capacity,
		Used:     s.used,
		Nodes:    s.live,
		Free:     s.cfg.Capacity - s.used,
	}
}

// Logger returns the store's logger.
func (s *Store) Logger() *slog.Logger {
	return s.log
}

func (s *Store) stringCost(str string) int {
	frag := s.cfg.FragmentSize
	n := (len(str) + frag - 1) / frag
	if n < 1 {
		return 1
	}
	return n
}

// alloc returns a new node of kind k holding one lock.
func (s *Store) alloc(k Kind, cost int) (Ref, error) {
	if s.firstFree == NoRef || s.used+cost > s.cfg.Capacity {
		if debug.Store() {
			debug.Logf("store: out of memory allocating %s (%d/%d units)\n", k, s.used, s.cfg.Capacity)
		}
		s.log.Debug("out of memory", "kind", k.String(), "used", s.used, "capacity", s.cfg.Capacity)
		return NoRef, fmt.Errorf("%w: allocating %s", ErrOutOfMemory, k)
	}
	r := s.firstFree
	n := &s.nodes[r]
	s.firstFree = n.next
	*n = node{kind: k, inUse: true, cost: int32(cost), locks: 1}
	s.used += cost
	s.live++
	if debug.Store() {
		debug.Logf("store: alloc %d %s\n", r, k)
	}
	return r, nil
}

// release returns r and everything it solely owns to the free list.
func (s *Store) release(r Ref) {
	work := append(s.work[:0], r)
	for len(work) > 0 {
		r := work[len(work)-1]
		work = work[:len(work)-1]
		n := &s.nodes[r]
		var owned [2]Ref
		switch {
		case n.kind.IsContainer():
			owned[0] = n.first
		case n.kind == NameKind:
			owned[0], owned[1] = n.first, n.next
		}
		if debug.Store() {
			debug.Logf("store: free %d %s\n", r, n.kind)
		}
		s.used -= int(n.cost)
		s.live--
		*n = node{next: s.firstFree}
		s.firstFree = r
		for j, o := range owned {
			if o == NoRef {
				continue
			}
			on := &s.nodes[o]
			if j == 1 && on.prev == r {
				on.prev = NoRef
			}
			on.refs--
			if on.refs == 0 && on.locks == 0 {
				work = append(work, o)
			}
		}
	}
	s.work = work[:0]
}

func (s *Store) lock(r Ref) {
	if r == NoRef {
		return
	}
	s.nodes[r].locks++
}

func (s *Store) unlock(r Ref) {
	if r == NoRef {
		return
	}
	n := &s.nodes[r]
	if !n.inUse || n.locks == 0 {
		s.lockUnderflow(r)
		return
	}
	n.locks--
	if debug.Locks() {
		debug.Logf("store: unlock %d %s locks=%d refs=%d\n", r, n.kind, n.locks, n.refs)
	}
	if n.locks == 0 && n.refs == 0 {
		s.release(r)
	}
}

func (s *Store) lockUnderflow(r Ref) {
	msg := fmt.Sprintf("jsv: unlock of node %d without a lock", r)
	if s.cfg.StrictLocks {
		panic(msg)
	}
	s.log.Error(msg)
}

func (s *Store) ref(r Ref) {
	if r == NoRef {
		return
	}
	s.nodes[r].refs++
}

func (s *Store) unref(r Ref) {
	if r == NoRef {
		return
	}
	n := &s.nodes[r]
	if n.refs == 0 {
		s.log.Error("jsv: unref of unowned node", "ref", r, "kind", n.kind.String())
		return
	}
	n.refs--
	if n.refs == 0 && n.locks == 0 {
		s.release(r)
	}
}

// Lock returns a new locked handle on r. It returns the zero Value for
// NoRef.
func (s *Store) Lock(r Ref) Value {
	if r == NoRef {
		return Value{}
	}
	s.lock(r)
	return Value{s: s, ref: r}
}

// Locks reports the number of caller locks held on r.
func (s *Store) Locks(r Ref) int {
	return int(s.nodes[r].locks)
}

// Refs reports the number of graph references held on r.
func (s *Store) Refs(r Ref) int {
	return int(s.nodes[r].refs)
}
