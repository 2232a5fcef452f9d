// Package tt implements a fixed-size transposition table. Each table is
// owned by exactly one search engine and is not safe for concurrent use;
// sessions that run in parallel each hold their own table.
package tt

import (
	"unsafe"

	"github.com/discochess/woodpusher/internal/board"
)

// Bound describes how an entry's score relates to the true value of the
// position: exact, a lower bound (fail-high), or an upper bound
// (fail-low).
type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower
	BoundUpper
)

// Entry is one stored search result.
type Entry struct {
	Hash  uint64
	Move  board.Move
	Score int32
	Depth int8
	Bound Bound
}

// bucketSize entries share one hash slot; replacement picks the
// shallowest when the bucket is full.
const bucketSize = 4

// Table is a transposition table sized by a memory budget in MiB.
type Table struct {
	entries []Entry
	buckets uint64
}

// New creates a table using roughly sizeMB mebibytes. Budgets below one
// MiB are raised to one.
func New(sizeMB int) *Table {
	if sizeMB < 1 {
		sizeMB = 1
	}
	entryBytes := uint64(unsafe.Sizeof(Entry{}))
	buckets := (uint64(sizeMB) << 20) / (entryBytes * bucketSize)
	if buckets == 0 {
		buckets = 1
	}
	return &Table{
		entries: make([]Entry, buckets*bucketSize),
		buckets: buckets,
	}
}

// Probe returns the stored entry for the hash, if present.
func (t *Table) Probe(hash uint64) (Entry, bool) {
	base := int(hash % t.buckets * bucketSize)
	for i := 0; i < bucketSize; i++ {
		if e := t.entries[base+i]; e.Hash == hash {
			return e, true
		}
	}
	return Entry{}, false
}

// Store records a search result. An existing entry for the same hash is
// overwritten; otherwise an empty slot is used, and failing that the
// shallowest entry in the bucket is replaced.
func (t *Table) Store(hash uint64, depth int, move board.Move, score int32, bound Bound) {
	base := int(hash % t.buckets * bucketSize)
	target := -1
	for i := 0; i < bucketSize; i++ {
		if t.entries[base+i].Hash == hash {
			target = base + i
			break
		}
	}
	if target == -1 {
		for i := 0; i < bucketSize; i++ {
			if t.entries[base+i].Hash == 0 {
				target = base + i
				break
			}
		}
	}
	if target == -1 {
		target = base
		for i := 1; i < bucketSize; i++ {
			if t.entries[base+i].Depth < t.entries[target].Depth {
				target = base + i
			}
		}
	}
	t.entries[target] = Entry{
		Hash:  hash,
		Move:  move,
		Score: score,
		Depth: int8(depth),
		Bound: bound,
	}
}

// Clear drops every stored entry, keeping the allocated capacity.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
}

// SizeEntries returns the table capacity in entries.
func (t *Table) SizeEntries() int { return len(t.entries) }
