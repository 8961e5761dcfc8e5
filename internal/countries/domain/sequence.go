package domain

import (
	"fmt"
	"sort"
	"unicode/utf8"

	stagedomain "agency_portal_backend/internal/stages/domain"
)

// Link is one stage assigned to a country.
type Link struct {
	StageName string
	Order     int
	IsActive  bool
	// Notes is nil when no note was ever saved or it was cleared.
	Notes *string
}

// Sequence is a country's links sorted by Order. Operations never mutate
// their receiver; they return a new Sequence.
type Sequence []Link

// NewSequence returns the sequence every country starts with: the pinned
// stage alone at position 1.
func NewSequence() Sequence {
	return Sequence{{StageName: stagedomain.PinnedStage, Order: 1, IsActive: true}}
}

// Sorted returns a copy ordered by position.
func (s Sequence) Sorted() Sequence {
	out := s.clone()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Index returns the slice index of name.
func (s Sequence) Index(name string) (int, bool) {
	for i, l := range s {
		if l.StageName == name {
			return i, true
		}
	}
	return -1, false
}

// Get returns the link for name.
func (s Sequence) Get(name string) (Link, bool) {
	i, ok := s.Index(name)
	if !ok {
		return Link{}, false
	}
	return s[i], true
}

// Assign appends name at position n+1, active and without a note.
func (s Sequence) Assign(name string) (Sequence, Link, error) {
	if _, ok := s.Index(name); ok {
		return s, Link{}, AlreadyAssigned(name)
	}
	link := Link{StageName: name, Order: len(s) + 1, IsActive: true}
	return append(s.clone(), link), link, nil
}

// Remove deletes name and shifts every later link up by one.
func (s Sequence) Remove(name string) (Sequence, Link, error) {
	if stagedomain.IsPinned(name) {
		return s, Link{}, PinnedStageRemoval(name)
	}
	idx, ok := s.Index(name)
	if !ok {
		return s, Link{}, StageNotAssigned(name)
	}

	removed := s[idx]
	out := make(Sequence, 0, len(s)-1)
	for i, l := range s {
		if i == idx {
			continue
		}
		if l.Order > removed.Order {
			l.Order--
		}
		out = append(out, l)
	}
	return out, removed, nil
}

// Reorder moves name to target, shifting the links in between by one.
// The pinned stage stays at 1; target must be in [2, n]. It returns the new
// sequence and the position name held before the move.
func (s Sequence) Reorder(name string, target int) (Sequence, int, error) {
	if stagedomain.IsPinned(name) {
		return s, 0, PinnedPosition(fmt.Sprintf("stage %q is pinned to position 1", name))
	}
	if target == 1 {
		return s, 0, PinnedPosition("position 1 is reserved for the pinned stage")
	}

	sorted := s.Sorted()
	idx, ok := sorted.Index(name)
	if !ok {
		return s, 0, StageNotAssigned(name)
	}
	n := len(sorted)
	if target < 2 || target > n {
		return s, 0, InvalidPosition(target, n)
	}

	from := sorted[idx].Order
	if from == target {
		return sorted, from, nil
	}

	// Movable sublist excludes the pinned head.
	movable := make(Sequence, 0, n-1)
	var head Sequence
	for _, l := range sorted {
		if stagedomain.IsPinned(l.StageName) {
			head = append(head, l)
			continue
		}
		movable = append(movable, l)
	}

	from0, _ := movable.Index(name)
	to0 := min(target-2, len(movable)-1)
	moved := movable[from0]
	movable = append(movable[:from0], movable[from0+1:]...)
	movable = append(movable[:to0], append(Sequence{moved}, movable[to0:]...)...)

	out := make(Sequence, 0, n)
	out = append(out, head...)
	for i, l := range movable {
		l.Order = i + 2
		out = append(out, l)
	}
	return out, from, nil
}

// SetActive sets the flag on name. changed is false when it already held.
func (s Sequence) SetActive(name string, active bool) (Sequence, bool, error) {
	idx, ok := s.Index(name)
	if !ok {
		return s, false, StageNotAssigned(name)
	}
	if s[idx].IsActive == active {
		return s, false, nil
	}
	out := s.clone()
	out[idx].IsActive = active
	return out, true, nil
}

// SetNote stores text on name; empty text clears the note. Length is
// counted in characters against max.
func (s Sequence) SetNote(name, text string, max int) (Sequence, error) {
	if length := utf8.RuneCountInString(text); length > max {
		return s, NoteTooLong(length, max)
	}
	idx, ok := s.Index(name)
	if !ok {
		return s, StageNotAssigned(name)
	}

	out := s.clone()
	if text == "" {
		out[idx].Notes = nil
	} else {
		note := text
		out[idx].Notes = &note
	}
	return out, nil
}

// Notes maps every assigned stage to its note text, empty when unset.
func (s Sequence) Notes() map[string]string {
	out := make(map[string]string, len(s))
	for _, l := range s {
		if l.Notes != nil {
			out[l.StageName] = *l.Notes
			continue
		}
		out[l.StageName] = ""
	}
	return out
}

// Violations lists every broken structural rule: positions must be exactly
// {1..n}, the pinned stage must be present at 1, and names must be unique.
func (s Sequence) Violations() []string {
	var out []string

	seenNames := make(map[string]struct{}, len(s))
	seenOrders := make(map[int]struct{}, len(s))
	pinnedAt := 0
	for _, l := range s {
		if _, dup := seenNames[l.StageName]; dup {
			out = append(out, fmt.Sprintf("stage %q assigned more than once", l.StageName))
		}
		seenNames[l.StageName] = struct{}{}

		if l.Order < 1 || l.Order > len(s) {
			out = append(out, fmt.Sprintf("stage %q has position %d outside [1, %d]", l.StageName, l.Order, len(s)))
		} else if _, dup := seenOrders[l.Order]; dup {
			out = append(out, fmt.Sprintf("position %d is used more than once", l.Order))
		}
		seenOrders[l.Order] = struct{}{}

		if stagedomain.IsPinned(l.StageName) {
			pinnedAt = l.Order
		}
	}

	switch {
	case pinnedAt == 0:
		out = append(out, fmt.Sprintf("pinned stage %q is missing", stagedomain.PinnedStage))
	case pinnedAt != 1:
		out = append(out, fmt.Sprintf("pinned stage %q is at position %d", stagedomain.PinnedStage, pinnedAt))
	}
	return out
}

func (s Sequence) clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}
