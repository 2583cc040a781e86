package scene

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/chazu/roi/pkg/geom"
)

// EntryID is a content-addressed identifier for scene entries.
type EntryID string

// ZeroID is the empty EntryID.
const ZeroID EntryID = ""

// NewEntryID derives an ID from an entry's name.
func NewEntryID(name string) EntryID {
	sum := sha256.Sum256([]byte("region/" + name))
	return EntryID(hex.EncodeToString(sum[:]))
}

// Short returns the first 8 characters of the ID for display.
func (id EntryID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// IsZero reports whether the ID is empty.
func (id EntryID) IsZero() bool {
	return id == ZeroID
}

// Entry is a named region in the scene.
type Entry struct {
	ID    EntryID     `json:"id"`
	Name  string      `json:"name"`
	Shape geom.Sphere `json:"-"`
}

// Probe records a containment query made while the script ran. Inside is
// the answer at that moment; later mutations do not change it.
type Probe struct {
	Label  string    `json:"label"`
	Region string    `json:"region,omitempty"` // entry name, empty for anonymous shapes
	Point  []float64 `json:"point"`
	Inside bool      `json:"inside"`
}

// Scene is the result of one evaluation.
type Scene struct {
	Entries   map[EntryID]*Entry `json:"entries"`
	Order     []EntryID          `json:"order"`
	NameIndex map[string]EntryID `json:"name_index"`
	Probes    []Probe            `json:"probes"`
	Version   uint64             `json:"version"`
}

// New creates an empty Scene.
func New() *Scene {
	return &Scene{
		Entries:   make(map[EntryID]*Entry),
		NameIndex: make(map[string]EntryID),
	}
}

// Define adds a named region. Names must be unique within a scene.
func (s *Scene) Define(name string, shape geom.Sphere) (*Entry, error) {
	if name == "" {
		return nil, fmt.Errorf("scene: region name must not be empty")
	}
	if _, exists := s.NameIndex[name]; exists {
		return nil, fmt.Errorf("scene: region %q already defined", name)
	}
	e := &Entry{ID: NewEntryID(name), Name: name, Shape: shape}
	s.Entries[e.ID] = e
	s.NameIndex[name] = e.ID
	s.Order = append(s.Order, e.ID)
	return e, nil
}

// Lookup returns the entry with the given name, or nil.
func (s *Scene) Lookup(name string) *Entry {
	id, ok := s.NameIndex[name]
	if !ok {
		return nil
	}
	return s.Get(id)
}

// Get returns the entry with the given ID, or nil.
func (s *Scene) Get(id EntryID) *Entry {
	return s.Entries[id]
}

// Ordered returns the entries in definition order.
func (s *Scene) Ordered() []*Entry {
	out := make([]*Entry, 0, len(s.Order))
	for _, id := range s.Order {
		if e := s.Get(id); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Record appends a probe.
func (s *Scene) Record(p Probe) {
	s.Probes = append(s.Probes, p)
}

// Len returns the number of entries.
func (s *Scene) Len() int {
	return len(s.Entries)
}
