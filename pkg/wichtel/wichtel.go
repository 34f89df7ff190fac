package wichtel

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/arnavshah/wichtel-api-go/pkg/models"
)

var (
	// ErrCandidatesExhausted is returned under PolicyAbort when a person has nobody left to draw.
	ErrCandidatesExhausted = errors.New("no candidates left")

	// ErrUnknownPolicy is returned by ParsePolicy for unrecognised names.
	ErrUnknownPolicy = errors.New("unknown exhaustion policy")
)

// ExhaustionPolicy decides what happens when a person has no valid recipient left
type ExhaustionPolicy int

const (
	// PolicySkip leaves the person out of the result and keeps drawing
	PolicySkip ExhaustionPolicy = iota
	// PolicyAbort fails the whole draw
	PolicyAbort
)

// ParsePolicy maps "skip" / "abort" to a policy. An empty string means PolicySkip.
func ParsePolicy(name string) (ExhaustionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "skip":
		return PolicySkip, nil
	case "abort":
		return PolicyAbort, nil
	}
	return PolicySkip, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

func (p ExhaustionPolicy) String() string {
	if p == PolicyAbort {
		return "abort"
	}
	return "skip"
}

// Drawer assigns every person a recipient other than themselves.
//
// The draw is greedy: persons are processed in input order and each one picks uniformly
// from what is left in the candidate pool. That is not guaranteed to produce a full
// derangement; a late person may find only themselves left in the pool.
// A Drawer is not safe for concurrent use.
type Drawer struct {
	Persons []string
	Policy  ExhaustionPolicy

	rng      RandomSource
	skipped  []models.SkipReason
	assigned int
}

// NewDrawer creates a new drawer using PolicySkip
func NewDrawer(persons []string, rng RandomSource) *Drawer {
	if rng == nil {
		rng = NewRandomSource()
	}
	return &Drawer{
		Persons: persons,
		Policy:  PolicySkip,
		rng:     rng,
	}
}

// Draw runs one greedy pass over Persons.
//
// Duplicate names are not merged: each entry draws on its own, but they share one key in the
// returned map, so a later entry overwrites an earlier one.
func (d *Drawer) Draw() (models.Assignment, error) {
	d.skipped = nil
	d.assigned = 0

	pool := slices.Clone(d.Persons)
	assignment := make(models.Assignment, len(d.Persons))

	for _, person := range d.Persons {
		available := candidates(pool, person)
		if len(available) == 0 {
			if d.Policy == PolicyAbort {
				return nil, fmt.Errorf("%w for %q", ErrCandidatesExhausted, person)
			}
			d.skipped = append(d.skipped, models.SkipReason{
				Person: person,
				Reason: exhaustionReason(pool, person),
			})
			continue
		}

		chosen := available[d.rng.Intn(len(available))]
		assignment[person] = chosen
		d.assigned++

		pool = removeFirst(pool, chosen)
	}

	return assignment, nil
}

// DrawBest repeats the greedy draw up to attempts times and keeps the result with the best
// coverage, stopping as soon as everybody has a recipient.
func (d *Drawer) DrawBest(attempts int) (models.Assignment, error) {
	if attempts <= 1 {
		return d.Draw()
	}

	var (
		best         models.Assignment
		bestSkipped  []models.SkipReason
		bestAssigned int
		lastErr      error
	)
	bestScore := -1.0

	for i := 0; i < attempts; i++ {
		assignment, err := d.Draw()
		if err != nil {
			lastErr = err
			continue
		}

		score := d.CoverageScore()
		if score > bestScore {
			bestScore = score
			best = assignment
			bestSkipped = d.skipped
			bestAssigned = d.assigned
		}

		if bestScore >= 100.0 {
			break
		}
	}

	if best == nil {
		return nil, lastErr
	}

	// Restore best
	d.skipped = bestSkipped
	d.assigned = bestAssigned
	return best, nil
}

// Skipped returns the persons the last draw could not serve
func (d *Drawer) Skipped() []models.SkipReason {
	return d.skipped
}

// CoverageScore returns the percentage (0-100) of input entries that received a recipient
// in the last draw. An empty list is fully covered.
func (d *Drawer) CoverageScore() float64 {
	if len(d.Persons) == 0 {
		return 100.0
	}
	return float64(d.assigned) / float64(len(d.Persons)) * 100.0
}

// Duplicates lists names that occur more than once, in first-seen order
func Duplicates(persons []string) []string {
	seen := make(map[string]int, len(persons))
	var dups []string
	for _, p := range persons {
		seen[p]++
		if seen[p] == 2 {
			dups = append(dups, p)
		}
	}
	return dups
}

// candidates returns every pool entry whose value differs from person.
func candidates(pool []string, person string) []string {
	available := make([]string, 0, len(pool))
	for _, name := range pool {
		if name != person {
			available = append(available, name)
		}
	}
	return available
}

// removeFirst drops the first entry equal to name, leaving later duplicates in place.
func removeFirst(pool []string, name string) []string {
	if i := slices.Index(pool, name); i >= 0 {
		return slices.Delete(pool, i, i+1)
	}
	return pool
}

func exhaustionReason(pool []string, person string) string {
	if len(pool) == 0 {
		return "candidate pool is empty"
	}
	return fmt.Sprintf("only entries named %q remain in the pool (%d)", person, len(pool))
}
