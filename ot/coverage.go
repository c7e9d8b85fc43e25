package ot

import "sort"

// --- Coverage --------------------------------------------------------------

// Coverage tables specify the glyphs a lookup subtable applies to.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#coverage-table
//
// Format 1 is a sorted list of glyph IDs, the coverage index is the position in the
// list. Format 2 is a sorted list of glyph ranges, each carrying the coverage index of
// its first glyph. The zero value is an absent coverage table and matches nothing.
type Coverage struct {
	format uint16
	glyphs []GlyphIndex    // format 1
	ranges []CoverageRange // format 2
}

// CoverageRange is a range record of a format 2 coverage table.
type CoverageRange struct {
	Start      GlyphIndex // first glyph ID in the range
	End        GlyphIndex // last glyph ID in the range, inclusive
	StartIndex uint16     // coverage index of Start
}

// NewGlyphCoverage creates a coverage table of format 1. glyphs are expected to be sorted
// in increasing order, as required by the OpenType specification; unsorted input will be
// sorted (the coverage index then refers to the sorted position).
func NewGlyphCoverage(glyphs ...GlyphIndex) Coverage {
	g := append([]GlyphIndex(nil), glyphs...)
	if !sort.SliceIsSorted(g, func(i, j int) bool { return g[i] < g[j] }) {
		tracer().Infof("coverage: glyph list not sorted, sorting it")
		sort.Slice(g, func(i, j int) bool { return g[i] < g[j] })
	}
	return Coverage{format: 1, glyphs: g}
}

// NewRangeCoverage creates a coverage table of format 2. Ranges are expected to be
// sorted by start glyph and non-overlapping.
func NewRangeCoverage(ranges ...CoverageRange) Coverage {
	r := append([]CoverageRange(nil), ranges...)
	sort.SliceStable(r, func(i, j int) bool { return r[i].Start < r[j].Start })
	return Coverage{format: 2, ranges: r}
}

// Format returns the coverage format, or 0 for an absent coverage table.
func (c Coverage) Format() uint16 {
	return c.format
}

// IsEmpty is true for an absent or empty coverage table.
func (c Coverage) IsEmpty() bool {
	return c.Len() == 0
}

// Len returns the number of glyphs covered.
func (c Coverage) Len() int {
	switch c.format {
	case 1:
		return len(c.glyphs)
	case 2:
		n := 0
		for _, r := range c.ranges {
			if r.End >= r.Start {
				n += int(r.End-r.Start) + 1
			}
		}
		return n
	}
	return 0
}

// Match returns the coverage index of glyph g, if g is covered.
// Lookup is a binary search in both formats.
func (c Coverage) Match(g GlyphIndex) (int, bool) {
	switch c.format {
	case 1:
		i := sort.Search(len(c.glyphs), func(i int) bool { return c.glyphs[i] >= g })
		if i < len(c.glyphs) && c.glyphs[i] == g {
			return i, true
		}
	case 2:
		i := sort.Search(len(c.ranges), func(i int) bool { return c.ranges[i].End >= g })
		if i < len(c.ranges) && c.ranges[i].Start <= g && g <= c.ranges[i].End {
			r := c.ranges[i]
			return int(r.StartIndex) + int(g-r.Start), true
		}
	}
	return 0, false
}

// Contains is a shortcut for Match, discarding the coverage index.
func (c Coverage) Contains(g GlyphIndex) bool {
	_, ok := c.Match(g)
	return ok
}

// Glyphs iterates over the covered glyphs in coverage index order and calls f with each
// glyph and its coverage index.
func (c Coverage) Glyphs(f func(g GlyphIndex, inx int)) {
	switch c.format {
	case 1:
		for i, g := range c.glyphs {
			f(g, i)
		}
	case 2:
		for _, r := range c.ranges {
			for g := int(r.Start); g <= int(r.End); g++ {
				f(GlyphIndex(g), int(r.StartIndex)+g-int(r.Start))
			}
		}
	}
}

// --- Class definitions -----------------------------------------------------

// ClassDefinitions groups glyphs into classes, used for contextual lookups, pair
// positioning, GDEF glyph classes and mark attachment classes.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#class-definition-table
//
// Glyphs not assigned to a class fall into class 0. The zero value assigns class 0 to
// every glyph.
type ClassDefinitions struct {
	format  uint16
	start   GlyphIndex   // format 1: first glyph ID of classes
	classes []uint16     // format 1: class values, indexed by glyph ID − start
	ranges  []ClassRange // format 2
}

// ClassRange is a class range record of a format 2 class definition table.
type ClassRange struct {
	Start GlyphIndex // first glyph ID in the range
	End   GlyphIndex // last glyph ID in the range, inclusive
	Class uint16     // class assigned to all glyphs in the range
}

// NewClassArray creates a class definition table of format 1.
func NewClassArray(start GlyphIndex, classes ...uint16) ClassDefinitions {
	return ClassDefinitions{
		format:  1,
		start:   start,
		classes: append([]uint16(nil), classes...),
	}
}

// NewClassRanges creates a class definition table of format 2.
func NewClassRanges(ranges ...ClassRange) ClassDefinitions {
	r := append([]ClassRange(nil), ranges...)
	sort.SliceStable(r, func(i, j int) bool { return r[i].Start < r[j].Start })
	return ClassDefinitions{format: 2, ranges: r}
}

// Format returns the class definition format, or 0 for an absent table.
func (cdef ClassDefinitions) Format() uint16 {
	return cdef.format
}

// IsEmpty is true for an absent class definition table.
func (cdef ClassDefinitions) IsEmpty() bool {
	return cdef.format == 0 || (len(cdef.classes) == 0 && len(cdef.ranges) == 0)
}

// Lookup returns the class of glyph g. Glyphs not covered are class 0.
func (cdef ClassDefinitions) Lookup(g GlyphIndex) uint16 {
	switch cdef.format {
	case 1:
		if g < cdef.start {
			return 0
		}
		if inx := int(g - cdef.start); inx < len(cdef.classes) {
			return cdef.classes[inx]
		}
	case 2:
		i := sort.Search(len(cdef.ranges), func(i int) bool { return cdef.ranges[i].End >= g })
		if i < len(cdef.ranges) && cdef.ranges[i].Start <= g {
			return cdef.ranges[i].Class
		}
	}
	return 0
}

// ClassCount returns the number of classes including class 0, i.e. the highest class
// value + 1.
func (cdef ClassDefinitions) ClassCount() int {
	highest := uint16(0)
	for _, c := range cdef.classes {
		if c > highest {
			highest = c
		}
	}
	for _, r := range cdef.ranges {
		if r.Class > highest {
			highest = r.Class
		}
	}
	return int(highest) + 1
}
