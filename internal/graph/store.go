// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package graph

import "sync"

// Store is the in-memory triple store. It is safe for concurrent use with
// at most one writer; see the package documentation for the concurrency
// model.
type Store struct {
	mu sync.RWMutex

	// subjects[s][p] = objects in insertion order
	subjects map[string]map[string][]Term

	// subjectOrder preserves first-seen subject order for deterministic
	// iteration and snapshots.
	subjectOrder []string

	// byType[class] = subjects typed rdf:type class, insertion order
	byType map[string][]string

	// byPredicate[p] = triples with that predicate, insertion order.
	// Used to build traversal adjacency without scanning every subject.
	byPredicate map[string][]Triple

	// seen deduplicates triples.
	seen map[string]struct{}
}

// Triple is one (subject, predicate, object) statement.
type Triple struct {
	S string `json:"s"`
	P string `json:"p"`
	O Term   `json:"o"`
}

// New creates an empty store.
func New() *Store {
	return &Store{
		subjects:    make(map[string]map[string][]Term),
		byType:      make(map[string][]string),
		byPredicate: make(map[string][]Triple),
		seen:        make(map[string]struct{}),
	}
}

// Add inserts a triple. Returns false if the identical triple already
// exists.
func (st *Store) Add(s, p string, o Term) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.addLocked(s, p, o)
}

// AddAll inserts a batch of triples, returning the number actually added.
func (st *Store) AddAll(triples []Triple) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	added := 0
	for _, t := range triples {
		if st.addLocked(t.S, t.P, t.O) {
			added++
		}
	}
	return added
}

func (st *Store) addLocked(s, p string, o Term) bool {
	key := s + "\x00" + p + "\x00" + o.key()
	if _, ok := st.seen[key]; ok {
		return false
	}
	st.seen[key] = struct{}{}

	preds, ok := st.subjects[s]
	if !ok {
		preds = make(map[string][]Term)
		st.subjects[s] = preds
		st.subjectOrder = append(st.subjectOrder, s)
	}
	preds[p] = append(preds[p], o)

	st.byPredicate[p] = append(st.byPredicate[p], Triple{S: s, P: p, O: o})

	if p == RDFType && o.IsIRI() {
		st.byType[o.Value] = append(st.byType[o.Value], s)
	}

	return true
}

// Has reports whether the exact triple exists.
func (st *Store) Has(s, p string, o Term) bool {
	st.mu.RLock()
	defer st.mu.RUnlock()

	_, ok := st.seen[s+"\x00"+p+"\x00"+o.key()]
	return ok
}

// Objects returns all objects of (s, p) in insertion order.
func (st *Store) Objects(s, p string) []Term {
	st.mu.RLock()
	defer st.mu.RUnlock()

	objs := st.subjects[s][p]
	if len(objs) == 0 {
		return nil
	}
	out := make([]Term, len(objs))
	copy(out, objs)
	return out
}

// Value returns the first object of (s, p), if any.
func (st *Store) Value(s, p string) (Term, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	objs := st.subjects[s][p]
	if len(objs) == 0 {
		return Term{}, false
	}
	return objs[0], true
}

// SubjectsOfType returns all subjects with rdf:type class, in insertion
// order.
func (st *Store) SubjectsOfType(class string) []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	subs := st.byType[class]
	if len(subs) == 0 {
		return nil
	}
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}

// ForEachTriple calls fn for every triple with predicate p, in insertion
// order. The callback must not mutate the store.
func (st *Store) ForEachTriple(p string, fn func(s string, o Term)) {
	st.mu.RLock()
	triples := st.byPredicate[p]
	snapshot := make([]Triple, len(triples))
	copy(snapshot, triples)
	st.mu.RUnlock()

	for _, t := range snapshot {
		fn(t.S, t.O)
	}
}

// Len returns the number of distinct triples.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.seen)
}

// Subjects returns every subject in first-seen order.
func (st *Store) Subjects() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]string, len(st.subjectOrder))
	copy(out, st.subjectOrder)
	return out
}

// predicateMap returns a copy of a subject's predicate map for snapshots.
func (st *Store) predicateMap(s string) map[string][]Term {
	st.mu.RLock()
	defer st.mu.RUnlock()

	preds, ok := st.subjects[s]
	if !ok {
		return nil
	}
	out := make(map[string][]Term, len(preds))
	for p, objs := range preds {
		cp := make([]Term, len(objs))
		copy(cp, objs)
		out[p] = cp
	}
	return out
}
