package cursor

import "sort"

// CursorSet manages the selections of one view.
// Selections are kept sorted by position and never overlap.
type CursorSet struct {
	selections []Selection
	primary    int
}

// NewCursorSet creates a cursor set with a single selection.
func NewCursorSet(initial Selection) *CursorSet {
	return &CursorSet{selections: []Selection{initial}}
}

// NewCursorSetAt creates a cursor set with a single cursor at offset.
func NewCursorSetAt(offset ByteOffset) *CursorSet {
	return NewCursorSet(NewCursorSelection(offset))
}

// NewCursorSetFromSlice creates a cursor set from selections.
// An empty slice yields a single cursor at offset 0.
func NewCursorSetFromSlice(selections []Selection) *CursorSet {
	cs := &CursorSet{}
	cs.SetAll(selections)
	return cs
}

// Primary returns the primary selection.
func (cs *CursorSet) Primary() Selection {
	return cs.selections[cs.primary]
}

// All returns a copy of all selections in document order.
func (cs *CursorSet) All() []Selection {
	result := make([]Selection, len(cs.selections))
	copy(result, cs.selections)
	return result
}

// Count returns the number of selections.
func (cs *CursorSet) Count() int {
	return len(cs.selections)
}

// IsMulti returns true if there is more than one selection.
func (cs *CursorSet) IsMulti() bool {
	return len(cs.selections) > 1
}

// Get returns the selection at index.
func (cs *CursorSet) Get(index int) Selection {
	return cs.selections[index]
}

// Add adds a selection, merging it with any selection it overlaps.
// The added selection becomes primary.
func (cs *CursorSet) Add(sel Selection) {
	cs.selections = append(cs.selections, sel)
	cs.normalize(sel)
}

// SetAll replaces all selections. The last selection becomes primary.
func (cs *CursorSet) SetAll(sels []Selection) {
	if len(sels) == 0 {
		cs.selections = []Selection{NewCursorSelection(0)}
		cs.primary = 0
		return
	}
	cs.selections = make([]Selection, len(sels))
	copy(cs.selections, sels)
	cs.normalize(sels[len(sels)-1])
}

// Clamp clamps every selection to [0, maxOffset].
func (cs *CursorSet) Clamp(maxOffset ByteOffset) {
	primary := cs.Primary().Clamp(maxOffset)
	for i, sel := range cs.selections {
		cs.selections[i] = sel.Clamp(maxOffset)
	}
	cs.normalize(primary)
}

// ClampText clamps every selection to text, keeping offsets on rune
// boundaries.
func (cs *CursorSet) ClampText(text string) {
	primary := cs.Primary().ClampText(text)
	for i, sel := range cs.selections {
		cs.selections[i] = sel.ClampText(text)
	}
	cs.normalize(primary)
}

// Clone returns a deep copy of the cursor set.
func (cs *CursorSet) Clone() *CursorSet {
	return &CursorSet{selections: cs.All(), primary: cs.primary}
}

// Ranges returns every selection as a range.
func (cs *CursorSet) Ranges() []Range {
	ranges := make([]Range, len(cs.selections))
	for i, sel := range cs.selections {
		ranges[i] = sel.Range()
	}
	return ranges
}

// Fragments returns the text spanned by each selection, in document order.
func (cs *CursorSet) Fragments(text string) []string {
	parts := make([]string, len(cs.selections))
	for i, sel := range cs.selections {
		parts[i] = sel.Fragment(text)
	}
	return parts
}

// normalize sorts selections, merges overlapping ones and re-locates the
// primary selection, which is the selection containing primary afterwards.
func (cs *CursorSet) normalize(primary Selection) {
	sort.SliceStable(cs.selections, func(i, j int) bool {
		si, sj := cs.selections[i].Start(), cs.selections[j].Start()
		if si != sj {
			return si < sj
		}
		return cs.selections[i].End() > cs.selections[j].End()
	})

	merged := cs.selections[:1]
	for _, sel := range cs.selections[1:] {
		last := &merged[len(merged)-1]
		if sel.Overlaps(*last) {
			*last = last.Merge(sel)
		} else {
			merged = append(merged, sel)
		}
	}
	cs.selections = merged

	cs.primary = 0
	for i, sel := range cs.selections {
		if sel == primary || sel.Overlaps(primary) || sel.Range() == primary.Range() {
			cs.primary = i
			break
		}
	}
}
