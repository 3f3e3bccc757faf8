package gfa

import (
	"os"
	"path/filepath"
	"testing"
)

// writeGFA writes GFA content to a temp file and returns its path.
func writeGFA(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "test.gfa")
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

const validGFA = "H\tVN:Z:1.0\n" +
	"S\t1\tACGT\n" +
	"S\t2\tGGTT\n" +
	"L\t1\t+\t2\t+\t*\n" +
	"P\tpath1\t1+,2+\t*\n" +
	"W\tsample\t0\tctg\t0\t8\t>1>2\n"

func TestValidatingPass(t *testing.T) {
	g, err := Open(writeGFA(t, validGFA), false)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	if !g.Valid() {
		t.Fatalf("Valid() = false: %v", g.Err())
	}
	if g.Segments() != 2 || g.Links() != 1 || g.Paths() != 1 || g.Walks() != 1 {
		t.Errorf("counts = %d S, %d L, %d P, %d W; want 2, 1, 1, 1",
			g.Segments(), g.Links(), g.Paths(), g.Walks())
	}
	if g.MaxSegmentLength() != 4 {
		t.Errorf("MaxSegmentLength() = %d, want 4", g.MaxSegmentLength())
	}
	if g.MaxPathLength() != 2 {
		t.Errorf("MaxPathLength() = %d, want 2", g.MaxPathLength())
	}
	if g.TranslateSegmentIDs() {
		t.Error("TranslateSegmentIDs() = true for numeric names")
	}
}

func TestSegmentNameTranslation(t *testing.T) {
	tests := []struct {
		name          string
		segments      string
		wantTranslate bool
	}{
		{"numeric names", "S\t1\tAC\nS\t2\tGT\n", false},
		{"non-numeric name", "S\tchr1\tAC\n", true},
		{"zero id", "S\t0\tAC\n", true},
		{"trailing junk", "S\t1x\tAC\n", true},
		{"one bad name poisons all", "S\t1\tAC\nS\tchr1\tGT\nS\t2\tAA\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Open(writeGFA(t, tt.segments), false)
			if err != nil {
				t.Fatal(err)
			}
			defer g.Close()
			if g.TranslateSegmentIDs() != tt.wantTranslate {
				t.Errorf("TranslateSegmentIDs() = %t, want %t", g.TranslateSegmentIDs(), tt.wantTranslate)
			}
		})
	}
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"segment without sequence field", "S\t1\n"},
		{"segment with empty sequence", "S\t1\t\n"},
		{"link with long orientation", "L\t1\t++\t2\t+\n"},
		{"link with missing orientation", "L\t1\t+\t2\n"},
		{"empty path subfield", "P\tp\t\n"},
		{"path segment without orientation", "P\tp\t1\n"},
		{"walk segment without glyph", "W\ts\t0\tc\t0\t4\t1>2\n"},
		{"walk line ends at start", "W\ts\t0\tc\t0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Open(writeGFA(t, tt.content), false)
			if err != nil {
				t.Fatal(err)
			}
			defer g.Close()

			if g.Valid() {
				t.Fatal("Valid() = true for a malformed line")
			}
			if g.Err() == nil {
				t.Fatal("Err() = nil for a malformed line")
			}

			// An invalid file is unusable: no consumer runs.
			visited := 0
			g.ForEachSegment(func(name, sequence []byte) bool {
				visited++
				return true
			})
			g.ForEachLink(func(from []byte, fromRev bool, to []byte, toRev bool) bool {
				visited++
				return true
			})
			g.ForEachPathName(func(name []byte) bool {
				visited++
				return true
			})
			if visited != 0 {
				t.Errorf("iteration visited %d records on an invalid file", visited)
			}
		})
	}
}

func TestValidationStopsAtFirstFailure(t *testing.T) {
	// The bad line comes before a good one; the pass must abort there.
	g, err := Open(writeGFA(t, "S\t1\tAC\nS\t2\n\nS\t3\tGT\n"), false)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	if g.Valid() {
		t.Fatal("Valid() = true")
	}
	if g.Segments() != 2 {
		t.Errorf("recorded %d segment offsets before aborting, want 2", g.Segments())
	}
}

func TestUnrecognizedLinesSkipped(t *testing.T) {
	content := "# a comment\n" +
		"H\tVN:Z:1.0\n" +
		"S\t1\tAC\n" +
		"C\tcontainment\n" +
		"S\t2\tGT\n"
	g, err := Open(writeGFA(t, content), false)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	if !g.Valid() || g.Segments() != 2 {
		t.Errorf("Valid() = %t, Segments() = %d; want true, 2", g.Valid(), g.Segments())
	}
}

func TestIteration(t *testing.T) {
	g, err := Open(writeGFA(t, validGFA), false)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	type segment struct{ name, seq string }
	var segments []segment
	g.ForEachSegment(func(name, sequence []byte) bool {
		segments = append(segments, segment{string(name), string(sequence)})
		return true
	})
	want := []segment{{"1", "ACGT"}, {"2", "GGTT"}}
	if len(segments) != 2 || segments[0] != want[0] || segments[1] != want[1] {
		t.Errorf("segments = %v, want %v", segments, want)
	}

	g.ForEachLink(func(from []byte, fromRev bool, to []byte, toRev bool) bool {
		if string(from) != "1" || fromRev || string(to) != "2" || toRev {
			t.Errorf("link = %s%t -> %s%t, want 1 false -> 2 false", from, fromRev, to, toRev)
		}
		return true
	})

	var pathSegments []string
	g.ForEachPath(
		func(name []byte) bool {
			if string(name) != "path1" {
				t.Errorf("path name = %q, want path1", name)
			}
			return true
		},
		func(name []byte, isReverse bool) bool {
			orient := "+"
			if isReverse {
				orient = "-"
			}
			pathSegments = append(pathSegments, string(name)+orient)
			return true
		},
		func() bool { return true },
	)
	if len(pathSegments) != 2 || pathSegments[0] != "1+" || pathSegments[1] != "2+" {
		t.Errorf("path segments = %v, want [1+ 2+]", pathSegments)
	}

	var walkSegments []string
	g.ForEachWalk(
		func(sample, haplotype, contig, start []byte) bool {
			if string(sample) != "sample" || string(haplotype) != "0" ||
				string(contig) != "ctg" || string(start) != "0" {
				t.Errorf("walk fields = %s %s %s %s", sample, haplotype, contig, start)
			}
			return true
		},
		func(name []byte, isReverse bool) bool {
			orient := ">"
			if isReverse {
				orient = "<"
			}
			walkSegments = append(walkSegments, orient+string(name))
			return true
		},
		func() bool { return true },
	)
	if len(walkSegments) != 2 || walkSegments[0] != ">1" || walkSegments[1] != ">2" {
		t.Errorf("walk segments = %v, want [>1 >2]", walkSegments)
	}
}

func TestIterationStopsEarly(t *testing.T) {
	g, err := Open(writeGFA(t, validGFA), false)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	visited := 0
	g.ForEachSegment(func(name, sequence []byte) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("visited %d segments after stop, want 1", visited)
	}
}

func TestWalkOrientations(t *testing.T) {
	content := "S\t1\tAC\nS\t2\tGT\n" +
		"W\ts\t0\tc\t0\t4\t>1<2\n"
	g, err := Open(writeGFA(t, content), false)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	var got []bool
	g.ForEachWalk(
		func(sample, haplotype, contig, start []byte) bool { return true },
		func(name []byte, isReverse bool) bool {
			got = append(got, isReverse)
			return true
		},
		func() bool { return true },
	)
	if len(got) != 2 || got[0] || !got[1] {
		t.Errorf("walk orientations = %v, want [false true]", got)
	}
}

func TestCloseIdempotent(t *testing.T) {
	g, err := Open(writeGFA(t, validGFA), false)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Close(); err != nil {
		t.Errorf("first Close() = %v", err)
	}
	if err := g.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestEmptyFile(t *testing.T) {
	g, err := Open(writeGFA(t, ""), false)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	if !g.Valid() {
		t.Error("Valid() = false for an empty file")
	}
	g.ForEachSegment(func(name, sequence []byte) bool {
		t.Error("ForEachSegment visited a record in an empty file")
		return true
	})
}

func TestMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.gfa"), false); err == nil {
		t.Fatal("Open() = nil error for a missing file")
	}
}

func TestExampleFile(t *testing.T) {
	g, err := Open(filepath.Join("..", "..", "test", "input", "example.gfa"), false)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	if !g.Valid() {
		t.Fatalf("Valid() = false: %v", g.Err())
	}
	if g.Segments() == 0 || g.Paths() == 0 || g.Walks() == 0 {
		t.Errorf("example file has %d segments, %d paths, %d walks",
			g.Segments(), g.Paths(), g.Walks())
	}
}
