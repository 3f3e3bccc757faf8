package gbwt

// ReferenceSampleName is the reserved sample name that marks reference
// paths when a graph stores both paths and walks.
const ReferenceSampleName = "_gbwt_ref"

// PathName identifies one stored path: which sample it belongs to,
// which contig it covers, its haplotype phase, and its starting offset
// (or running count, for paths without coordinates).
type PathName struct {
	Sample uint64
	Contig uint64
	Phase  uint64
	Count  uint64
}

// Metadata is the optional naming metadata attached to an index.
type Metadata struct {
	// Samples are the sample names, indexed by PathName.Sample.
	Samples []string

	// Contigs are the contig names, indexed by PathName.Contig.
	Contigs []string

	// Paths holds one structured name per stored path, in insertion order.
	Paths []PathName
}

// HasPathNames reports whether any structured path names are stored.
func (m *Metadata) HasPathNames() bool { return m != nil && len(m.Paths) > 0 }

// HasSampleNames reports whether sample names are stored.
func (m *Metadata) HasSampleNames() bool { return m != nil && len(m.Samples) > 0 }

// HasContigNames reports whether contig names are stored.
func (m *Metadata) HasContigNames() bool { return m != nil && len(m.Contigs) > 0 }

// Sample returns the name of sample i, or an empty string if unnamed.
func (m *Metadata) Sample(i uint64) string {
	if m == nil || i >= uint64(len(m.Samples)) {
		return ""
	}
	return m.Samples[i]
}

// Contig returns the name of contig i, or an empty string if unnamed.
func (m *Metadata) Contig(i uint64) string {
	if m == nil || i >= uint64(len(m.Contigs)) {
		return ""
	}
	return m.Contigs[i]
}

// SampleID looks up a sample by name.
func (m *Metadata) SampleID(name string) (uint64, bool) {
	if m == nil {
		return 0, false
	}
	for i, s := range m.Samples {
		if s == name {
			return uint64(i), true
		}
	}
	return 0, false
}

// PathsForSample returns the ids of all paths belonging to a sample,
// in insertion order.
func (m *Metadata) PathsForSample(sample uint64) []uint64 {
	if m == nil {
		return nil
	}
	var paths []uint64
	for i, p := range m.Paths {
		if p.Sample == sample {
			paths = append(paths, uint64(i))
		}
	}
	return paths
}
