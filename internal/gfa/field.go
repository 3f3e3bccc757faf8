package gfa

// field is a borrowed view [begin, end) of the mapped file, tagged
// with the line it came from. It never outlives the mapping.
type field struct {
	buf     []byte
	begin   int
	end     int
	lineNum int
	typ     byte
	hasNext bool
}

func (f field) size() int     { return f.end - f.begin }
func (f field) empty() bool   { return f.size() == 0 }
func (f field) bytes() []byte { return f.buf[f.begin:f.end] }
func (f field) front() byte   { return f.buf[f.begin] }
func (f field) back() byte    { return f.buf[f.end-1] }

// For segment orientations in links.
func (f field) validOrientation() bool {
	return f.size() == 1 && (f.back() == '+' || f.back() == '-')
}

func (f field) isReverseOrientation() bool { return f.back() == '-' }

// For path segment subfields: the name followed by an orientation glyph.
func (f field) validPathSegment() bool {
	return f.size() >= 2 && (f.back() == '+' || f.back() == '-')
}

func (f field) pathSegment() []byte        { return f.buf[f.begin : f.end-1] }
func (f field) isReversePathSegment() bool { return f.back() == '-' }

// For walk segment subfields: an orientation glyph followed by the name.
func (f field) validWalkSegment() bool {
	return f.size() >= 2 && (f.front() == '<' || f.front() == '>')
}

func (f field) walkSegment() []byte        { return f.buf[f.begin+1 : f.end] }
func (f field) isReverseWalkSegment() bool { return f.front() == '<' }

// Usually the next field/subfield starts at end+1, because end points
// at the separator. Walk subfields include the leading orientation
// glyph, so they start at end instead; before the first subfield, end
// (still pointing at the preceding tab) must be stepped past.
func (f *field) startWalk() { f.end++ }

// firstField returns the first tab-separated field of a line.
func (g *GFAFile) firstField(lineStart, lineNum int) field {
	limit := lineStart
	for limit < len(g.data) && !g.isFieldEnd(g.data[limit]) {
		limit++
	}
	return field{
		buf:     g.data,
		begin:   lineStart,
		end:     limit,
		lineNum: lineNum,
		typ:     g.data[lineStart],
		hasNext: limit < len(g.data) && g.data[limit] == '\t',
	}
}

// nextField returns the next tab-separated field, assuming there is one.
func (g *GFAFile) nextField(f field) field {
	limit := f.end + 1
	for limit < len(g.data) && !g.isFieldEnd(g.data[limit]) {
		limit++
	}
	return field{
		buf:     g.data,
		begin:   f.end + 1,
		end:     limit,
		lineNum: f.lineNum,
		typ:     f.typ,
		hasNext: limit < len(g.data) && g.data[limit] == '\t',
	}
}

// nextSubfield returns the next comma-separated subfield, assuming
// there is one.
func (g *GFAFile) nextSubfield(f field) field {
	limit := f.end + 1
	for limit < len(g.data) && !g.isSubfieldEnd(g.data[limit]) {
		limit++
	}
	return field{
		buf:     g.data,
		begin:   f.end + 1,
		end:     limit,
		lineNum: f.lineNum,
		typ:     f.typ,
		hasNext: limit < len(g.data) && g.data[limit] == ',',
	}
}

// nextWalkSubfield returns the next walk subfield. The orientation
// glyph at the start of a segment also separates it from the previous
// one, so it is consumed as part of the subfield.
func (g *GFAFile) nextWalkSubfield(f field) field {
	limit := f.end
	if limit < len(g.data) && (g.data[limit] == '<' || g.data[limit] == '>') {
		limit++
		for limit < len(g.data) && !g.isWalkSubfieldEnd(g.data[limit]) {
			limit++
		}
	}
	return field{
		buf:     g.data,
		begin:   f.end,
		end:     limit,
		lineNum: f.lineNum,
		typ:     f.typ,
		hasNext: limit < len(g.data) && (g.data[limit] == '<' || g.data[limit] == '>'),
	}
}
