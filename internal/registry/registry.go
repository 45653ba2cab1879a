package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pystub/internal/descriptor"
)

// Entry is one registered descriptor. ID identifies the registration event;
// the catalog key is the descriptor's stable source identity.
type Entry struct {
	ID           string
	Key          string
	Descriptor   descriptor.Descriptor
	SourceFile   string
	RegisteredAt time.Time
}

// Registry is the process-wide descriptor catalog. It is populated during
// the scan phase and read by consumers afterwards; registration order is
// deliberately not observable. Re-registering an identity replaces the
// previous entry so watch-mode rescans stay idempotent.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func New() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

func key(d descriptor.Descriptor) string {
	return fmt.Sprintf("%s:%s", d.DescriptorKind(), d.Identity())
}

func (r *Registry) Register(d descriptor.Descriptor, sourceFile string) Entry {
	entry := Entry{
		ID:           uuid.NewString(),
		Key:          key(d),
		Descriptor:   d,
		SourceFile:   sourceFile,
		RegisteredAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.entries[entry.Key] = entry
	r.mu.Unlock()

	return entry
}

// DropFile removes every entry registered from the given source file. Used
// when a rescan of that file starts, so deleted declarations disappear.
func (r *Registry) DropFile(sourceFile string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, e := range r.entries {
		if e.SourceFile == sourceFile {
			delete(r.entries, k)
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns all entries sorted by catalog key. Sorting removes any
// trace of registration order before a consumer can depend on it.
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	entries := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// CountByKind returns how many entries of each descriptor kind are held.
func (r *Registry) CountByKind() map[descriptor.DescKind]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[descriptor.DescKind]int)
	for _, e := range r.entries {
		counts[e.Descriptor.DescriptorKind()]++
	}
	return counts
}
