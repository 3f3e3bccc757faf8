// Package gfa parses GFA files into the bit-packed path index and
// writes them back out. The tokenizer memory-maps the file once,
// validates every segment, link, path, and walk line in a single pass,
// and replays the recorded lines through callback iteration; nothing
// else in the package touches raw bytes.
package gfa

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Extension is the conventional GFA file suffix.
const Extension = ".gfa"

// GFAFile is a memory-mapped GFA file after its validating pass. The
// mapping is read-only and shared; fields borrowed from it must not
// outlive Close.
type GFAFile struct {
	file *os.File
	data []byte

	valid               bool
	err                 error
	translateSegmentIDs bool
	maxSegmentLength    uint64
	maxPathLength       uint64

	// Separator classification masks, indexed by byte/64, bit byte%64.
	fieldEnd        [4]uint64
	subfieldEnd     [4]uint64
	walkSubfieldEnd [4]uint64

	// Byte offsets of validated line starts, one slice per record type.
	sLines []int
	lLines []int
	pLines []int
	wLines []int
}

// Open memory-maps and validates a GFA file. I/O failures are returned
// as errors; a structural validation failure instead marks the file
// permanently invalid (see Valid and Err) after logging a diagnostic.
func Open(filename string, verbose bool) (*GFAFile, error) {
	if verbose {
		stderr.Printf("Opening GFA file %s", filename)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open file %s: %v", filename, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("cannot stat file %s: %v", filename, err)
	}

	g := &GFAFile{file: f, valid: true}
	if info.Size() > 0 {
		data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("cannot memory map file %s: %v", filename, err)
		}
		// We make sequential passes over the data. Advisory only.
		_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
		g.data = data
	}

	g.addFieldEnd('\n')
	g.addFieldEnd('\t')
	g.addSubfieldEnd('\n')
	g.addSubfieldEnd('\t')
	g.addSubfieldEnd(',')
	g.addWalkSubfieldEnd('\n')
	g.addWalkSubfieldEnd('\t')
	g.addWalkSubfieldEnd('<')
	g.addWalkSubfieldEnd('>')

	if verbose {
		stderr.Printf("Validating GFA file %s", filename)
	}
	g.validate()
	if verbose && g.valid {
		stderr.Printf("Found %d segments, %d links, %d paths, and %d walks",
			g.Segments(), g.Links(), g.Paths(), g.Walks())
	}
	return g, nil
}

// Close unmaps and closes the file. Safe to call more than once.
func (g *GFAFile) Close() error {
	var err error
	if g.data != nil {
		err = unix.Munmap(g.data)
		g.data = nil
	}
	if g.file != nil {
		if cerr := g.file.Close(); err == nil {
			err = cerr
		}
		g.file = nil
	}
	return err
}

// ok reports whether the file is usable for iteration.
func (g *GFAFile) ok() bool { return g.valid && len(g.data) > 0 }

// Valid reports whether the file passed validation. Once false, every
// iteration method is a no-op.
func (g *GFAFile) Valid() bool { return g.valid }

// Err returns the validation diagnostic, nil for a valid file.
func (g *GFAFile) Err() error { return g.err }

// Size returns the file size in bytes.
func (g *GFAFile) Size() int { return len(g.data) }

// Segments returns the number of validated S-lines.
func (g *GFAFile) Segments() int { return len(g.sLines) }

// Links returns the number of validated L-lines.
func (g *GFAFile) Links() int { return len(g.lLines) }

// Paths returns the number of validated P-lines.
func (g *GFAFile) Paths() int { return len(g.pLines) }

// Walks returns the number of validated W-lines.
func (g *GFAFile) Walks() int { return len(g.wLines) }

// MaxSegmentLength returns the longest sequence field seen on any S-line.
func (g *GFAFile) MaxSegmentLength() uint64 { return g.maxSegmentLength }

// MaxPathLength returns the most subfields seen on any P- or W-line.
func (g *GFAFile) MaxPathLength() uint64 { return g.maxPathLength }

// TranslateSegmentIDs reports whether any segment name is unusable as
// a node id (non-numeric or zero). One bad name forces translation of
// all segments.
func (g *GFAFile) TranslateSegmentIDs() bool { return g.translateSegmentIDs }

func (g *GFAFile) addFieldEnd(c byte)        { g.fieldEnd[c/64] |= 1 << (c % 64) }
func (g *GFAFile) addSubfieldEnd(c byte)     { g.subfieldEnd[c/64] |= 1 << (c % 64) }
func (g *GFAFile) addWalkSubfieldEnd(c byte) { g.walkSubfieldEnd[c/64] |= 1 << (c % 64) }

func (g *GFAFile) isFieldEnd(c byte) bool {
	return g.fieldEnd[c/64]&(1<<(c%64)) != 0
}

func (g *GFAFile) isSubfieldEnd(c byte) bool {
	return g.subfieldEnd[c/64]&(1<<(c%64)) != 0
}

func (g *GFAFile) isWalkSubfieldEnd(c byte) bool {
	return g.walkSubfieldEnd[c/64]&(1<<(c%64)) != 0
}

// nextLine returns the offset of the start of the next line.
func (g *GFAFile) nextLine(pos int) int {
	for pos < len(g.data) && g.data[pos] != '\n' {
		pos++
	}
	if pos < len(g.data) {
		pos++
	}
	return pos
}

// validate runs the single validating pass, recording line offsets per
// record type and aborting on the first malformed line.
func (g *GFAFile) validate() {
	pos, lineNum := 0, 0
	for pos < len(g.data) {
		var ok bool
		switch g.data[pos] {
		case 'S':
			pos, ok = g.addSLine(pos, lineNum)
		case 'L':
			pos, ok = g.addLLine(pos, lineNum)
		case 'P':
			pos, ok = g.addPLine(pos, lineNum)
		case 'W':
			pos, ok = g.addWLine(pos, lineNum)
		default:
			pos, ok = g.nextLine(pos), true
		}
		if !ok {
			return
		}
		lineNum++
	}
}

// fail records a validation diagnostic and marks the file unusable.
func (g *GFAFile) fail(format string, args ...interface{}) {
	g.valid = false
	g.err = fmt.Errorf(format, args...)
	stderr.Printf("GFAFile: %v", g.err)
}

// checkField verifies that a field is nonempty and, when more fields
// are required, that the line does not end here.
func (g *GFAFile) checkField(f field, fieldName string, shouldHaveNext bool) bool {
	if f.empty() {
		g.fail("%c-line %d has no %s", f.typ, f.lineNum, fieldName)
		return false
	}
	if shouldHaveNext && !f.hasNext {
		g.fail("%c-line %d ended after %s", f.typ, f.lineNum, fieldName)
		return false
	}
	return true
}

func (g *GFAFile) addSLine(pos, lineNum int) (int, bool) {
	g.sLines = append(g.sLines, pos)

	// Skip the record type field.
	f := g.firstField(pos, lineNum)
	if !g.checkField(f, "record type", true) {
		return 0, false
	}

	// Segment name field.
	f = g.nextField(f)
	if !g.checkField(f, "segment name", true) {
		return 0, false
	}
	if !g.translateSegmentIDs {
		id, err := strconv.ParseUint(string(f.bytes()), 10, 64)
		if err != nil || id == 0 {
			g.translateSegmentIDs = true
		}
	}

	// Sequence field.
	f = g.nextField(f)
	if !g.checkField(f, "sequence", false) {
		return 0, false
	}
	if uint64(f.size()) > g.maxSegmentLength {
		g.maxSegmentLength = uint64(f.size())
	}

	return g.nextLine(f.end), true
}

func (g *GFAFile) addLLine(pos, lineNum int) (int, bool) {
	g.lLines = append(g.lLines, pos)

	// Skip the record type field.
	f := g.firstField(pos, lineNum)
	if !g.checkField(f, "record type", true) {
		return 0, false
	}

	// Source segment field.
	f = g.nextField(f)
	if !g.checkField(f, "source segment", true) {
		return 0, false
	}

	// Source orientation field.
	f = g.nextField(f)
	if !g.checkField(f, "source orientation", true) {
		return 0, false
	}
	if !f.validOrientation() {
		g.fail("invalid source orientation %q on line %d", string(f.bytes()), lineNum)
		return 0, false
	}

	// Destination segment field.
	f = g.nextField(f)
	if !g.checkField(f, "destination segment", true) {
		return 0, false
	}

	// Destination orientation field.
	f = g.nextField(f)
	if !g.checkField(f, "destination orientation", false) {
		return 0, false
	}
	if !f.validOrientation() {
		g.fail("invalid destination orientation %q on line %d", string(f.bytes()), lineNum)
		return 0, false
	}

	return g.nextLine(f.end), true
}

func (g *GFAFile) addPLine(pos, lineNum int) (int, bool) {
	g.pLines = append(g.pLines, pos)

	// Skip the record type field.
	f := g.firstField(pos, lineNum)
	if !g.checkField(f, "record type", true) {
		return 0, false
	}

	// Path name field.
	f = g.nextField(f)
	if !g.checkField(f, "path name", true) {
		return 0, false
	}

	// Segment names field.
	pathLength := uint64(0)
	for {
		f = g.nextSubfield(f)
		if !f.validPathSegment() {
			g.fail("invalid path segment %q on line %d", string(f.bytes()), lineNum)
			return 0, false
		}
		pathLength++
		if !f.hasNext {
			break
		}
	}
	if pathLength == 0 {
		g.fail("the path on line %d is empty", lineNum)
		return 0, false
	}
	if pathLength > g.maxPathLength {
		g.maxPathLength = pathLength
	}

	return g.nextLine(f.end), true
}

func (g *GFAFile) addWLine(pos, lineNum int) (int, bool) {
	g.wLines = append(g.wLines, pos)

	// Skip the record type field.
	f := g.firstField(pos, lineNum)
	if !g.checkField(f, "record type", true) {
		return 0, false
	}

	// Sample name field.
	f = g.nextField(f)
	if !g.checkField(f, "sample name", true) {
		return 0, false
	}

	// Haplotype index field.
	f = g.nextField(f)
	if !g.checkField(f, "haplotype index", true) {
		return 0, false
	}

	// Contig name field.
	f = g.nextField(f)
	if !g.checkField(f, "contig name", true) {
		return 0, false
	}

	// Start position field.
	f = g.nextField(f)
	if !g.checkField(f, "start position", true) {
		return 0, false
	}

	// Skip the end position field.
	f = g.nextField(f)
	if !g.checkField(f, "end position", true) {
		return 0, false
	}

	// Segment names field.
	pathLength := uint64(0)
	f.startWalk()
	for {
		f = g.nextWalkSubfield(f)
		if !f.validWalkSegment() {
			g.fail("invalid walk segment %q on line %d", string(f.bytes()), lineNum)
			return 0, false
		}
		pathLength++
		if !f.hasNext {
			break
		}
	}
	if pathLength == 0 {
		g.fail("the walk on line %d is empty", lineNum)
		return 0, false
	}
	if pathLength > g.maxPathLength {
		g.maxPathLength = pathLength
	}

	return g.nextLine(f.end), true
}
