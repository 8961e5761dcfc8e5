package repository

import "agency_portal_backend/internal/countries/domain"

// changeSet is the row-level difference between two sequences of one country.
type changeSet struct {
	inserted []domain.Link
	updated  []domain.Link
	deleted  []domain.Link
}

func (c changeSet) empty() bool {
	return len(c.inserted) == 0 && len(c.updated) == 0 && len(c.deleted) == 0
}

func diffSequences(before, after domain.Sequence) changeSet {
	var out changeSet

	prev := make(map[string]domain.Link, len(before))
	for _, l := range before {
		prev[l.StageName] = l
	}

	for _, l := range after {
		old, ok := prev[l.StageName]
		if !ok {
			out.inserted = append(out.inserted, l)
			continue
		}
		delete(prev, l.StageName)
		if linkChanged(old, l) {
			out.updated = append(out.updated, l)
		}
	}

	for _, l := range before {
		if _, gone := prev[l.StageName]; gone {
			out.deleted = append(out.deleted, l)
		}
	}
	return out
}

func linkChanged(a, b domain.Link) bool {
	if a.Order != b.Order || a.IsActive != b.IsActive {
		return true
	}
	switch {
	case a.Notes == nil && b.Notes == nil:
		return false
	case a.Notes == nil || b.Notes == nil:
		return true
	default:
		return *a.Notes != *b.Notes
	}
}
