package recognition

import (
	"math"

	"github.com/your-org/facerec/internal/storage"
)

// Match is the outcome of comparing one probe embedding against the
// enrolled set. Distance is nil when no identities were enrolled; for an
// unmatched probe it carries the closest distance found outside tolerance.
type Match struct {
	Matched  bool
	Name     string
	Distance *float64
}

// Snapshot is an immutable, point-in-time copy of every enrolled
// identity's embeddings, ordered by name so iteration (and therefore
// tie-breaking) is deterministic.
type Snapshot struct {
	people []storage.PersonEncodings
}

// Len returns the number of enrolled identities in the snapshot.
func (s *Snapshot) Len() int { return len(s.people) }

// Match finds the identity whose embedding set contains the globally
// closest embedding to probe. A match is declared iff at least one
// identity is enrolled and the minimum Euclidean distance is within
// tolerance. Ties go to the first identity in snapshot order.
//
// The tolerance is compared against unbounded Euclidean distance even
// though it is conventionally quoted in [0,1]; callers rely on the literal
// comparison.
func (s *Snapshot) Match(probe []float32, tolerance float64) Match {
	best := math.Inf(1)
	bestName := ""

	for _, person := range s.people {
		for _, enc := range person.Encodings {
			// Stored encodings are hand-editable files; skip any whose
			// dimension no longer matches the probe.
			if len(enc) != len(probe) {
				continue
			}
			if d := euclidean(probe, enc); d < best {
				best = d
				bestName = person.Name
			}
		}
	}

	if bestName == "" {
		return Match{}
	}

	dist := best
	m := Match{Distance: &dist}
	if best <= tolerance {
		m.Matched = true
		m.Name = bestName
	}
	return m
}

// euclidean computes the L2 distance between two embeddings. Vectors are
// assumed to be the same length (caller's responsibility).
func euclidean(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
