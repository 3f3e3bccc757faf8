package gfa

// The iteration methods replay the line offsets recorded during
// validation and re-tokenize each line on demand. All of them are
// no-ops on an invalid file, and stop early the moment a callback
// returns false. Byte-slice arguments are borrowed from the mapping
// and must be copied if they are kept.

// ForEachSegment visits every S-line as (name, sequence).
func (g *GFAFile) ForEachSegment(segment func(name []byte, sequence []byte) bool) {
	if !g.ok() {
		return
	}
	for _, pos := range g.sLines {
		// Skip the record type field.
		f := g.firstField(pos, 0)

		// Segment name field.
		f = g.nextField(f)
		name := f.bytes()

		// Sequence field.
		f = g.nextField(f)
		if !segment(name, f.bytes()) {
			return
		}
	}
}

// ForEachLink visits every L-line as two oriented segment names.
func (g *GFAFile) ForEachLink(link func(from []byte, fromRev bool, to []byte, toRev bool) bool) {
	if !g.ok() {
		return
	}
	for _, pos := range g.lLines {
		// Skip the record type field.
		f := g.firstField(pos, 0)

		// Source segment field.
		f = g.nextField(f)
		from := f.bytes()

		// Source orientation field.
		f = g.nextField(f)
		fromRev := f.isReverseOrientation()

		// Destination segment field.
		f = g.nextField(f)
		to := f.bytes()

		// Destination orientation field.
		f = g.nextField(f)
		if !link(from, fromRev, to, f.isReverseOrientation()) {
			return
		}
	}
}

// ForEachPathName visits the name of every P-line.
func (g *GFAFile) ForEachPathName(path func(name []byte) bool) {
	if !g.ok() {
		return
	}
	for _, pos := range g.pLines {
		// Skip the record type field.
		f := g.firstField(pos, 0)

		// Path name field.
		f = g.nextField(f)
		if !path(f.bytes()) {
			return
		}
	}
}

// ForEachPath visits every P-line: path for the name, pathSegment for
// each oriented segment, finishPath after the last segment.
func (g *GFAFile) ForEachPath(
	path func(name []byte) bool,
	pathSegment func(name []byte, isReverse bool) bool,
	finishPath func() bool,
) {
	if !g.ok() {
		return
	}
	for _, pos := range g.pLines {
		// Skip the record type field.
		f := g.firstField(pos, 0)

		// Path name field.
		f = g.nextField(f)
		if !path(f.bytes()) {
			return
		}

		// Segment names field.
		for {
			f = g.nextSubfield(f)
			if !pathSegment(f.pathSegment(), f.isReversePathSegment()) {
				return
			}
			if !f.hasNext {
				break
			}
		}

		if !finishPath() {
			return
		}
	}
}

// ForEachWalkName visits the four structured name fields of every W-line.
func (g *GFAFile) ForEachWalkName(walk func(sample, haplotype, contig, start []byte) bool) {
	if !g.ok() {
		return
	}
	for _, pos := range g.wLines {
		// Skip the record type field.
		f := g.firstField(pos, 0)

		// Sample field.
		f = g.nextField(f)
		sample := f.bytes()

		// Haplotype field.
		f = g.nextField(f)
		haplotype := f.bytes()

		// Contig field.
		f = g.nextField(f)
		contig := f.bytes()

		// Start field.
		f = g.nextField(f)
		if !walk(sample, haplotype, contig, f.bytes()) {
			return
		}
	}
}

// ForEachWalk visits every W-line: walk for the name fields,
// walkSegment for each oriented segment, finishWalk after the last
// segment.
func (g *GFAFile) ForEachWalk(
	walk func(sample, haplotype, contig, start []byte) bool,
	walkSegment func(name []byte, isReverse bool) bool,
	finishWalk func() bool,
) {
	if !g.ok() {
		return
	}
	for _, pos := range g.wLines {
		// Skip the record type field.
		f := g.firstField(pos, 0)

		// Sample field.
		f = g.nextField(f)
		sample := f.bytes()

		// Haplotype field.
		f = g.nextField(f)
		haplotype := f.bytes()

		// Contig field.
		f = g.nextField(f)
		contig := f.bytes()

		// Start field.
		f = g.nextField(f)
		if !walk(sample, haplotype, contig, f.bytes()) {
			return
		}

		// Skip the end field.
		f = g.nextField(f)

		// Segment names field.
		f.startWalk()
		for {
			f = g.nextWalkSubfield(f)
			if !walkSegment(f.walkSegment(), f.isReverseWalkSegment()) {
				return
			}
			if !f.hasNext {
				break
			}
		}

		if !finishWalk() {
			return
		}
	}
}
