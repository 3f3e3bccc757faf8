package gbwt

import (
	"regexp"
	"strconv"
)

// Default path name decomposition: the whole name is the sample name.
const (
	DefaultPathNameRegex  = ".*"
	DefaultPathNameFields = "S"
)

// MetadataBuilder derives structured path names from GFA path names and
// walk fields. Path names are decomposed with a regular expression; the
// fields string assigns a role to each submatch, by position:
// 'S' sample, 'C' contig, 'H' haplotype phase, 'F' fragment/count.
// Any other character skips the submatch.
type MetadataBuilder struct {
	re     *regexp.Regexp
	fields string

	samples   []string
	sampleIDs map[string]uint64
	contigs   []string
	contigIDs map[string]uint64
	paths     []PathName

	// Running count per (sample, contig, phase), used when a name
	// carries no fragment field.
	counts map[PathName]uint64
}

// NewMetadataBuilder compiles the path name pattern. An invalid pattern
// is an error; an empty pattern and fields fall back to the defaults.
func NewMetadataBuilder(pattern, fields string) (*MetadataBuilder, error) {
	if pattern == "" {
		pattern = DefaultPathNameRegex
	}
	if fields == "" {
		fields = DefaultPathNameFields
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &MetadataBuilder{
		re:        re,
		fields:    fields,
		sampleIDs: make(map[string]uint64),
		contigIDs: make(map[string]uint64),
		counts:    make(map[PathName]uint64),
	}, nil
}

func (b *MetadataBuilder) sample(name string) uint64 {
	if id, ok := b.sampleIDs[name]; ok {
		return id
	}
	id := uint64(len(b.samples))
	b.samples = append(b.samples, name)
	b.sampleIDs[name] = id
	return id
}

func (b *MetadataBuilder) contig(name string) uint64 {
	if id, ok := b.contigIDs[name]; ok {
		return id
	}
	id := uint64(len(b.contigs))
	b.contigs = append(b.contigs, name)
	b.contigIDs[name] = id
	return id
}

// addPath appends a path name, rejecting exact duplicates.
func (b *MetadataBuilder) addPath(p PathName) bool {
	for _, existing := range b.paths {
		if existing == p {
			return false
		}
	}
	b.paths = append(b.paths, p)
	return true
}

// AddReferencePath stores a path name under the reserved reference
// sample, with the path name as the contig name.
func (b *MetadataBuilder) AddReferencePath(name string) bool {
	p := PathName{
		Sample: b.sample(ReferenceSampleName),
		Contig: b.contig(name),
	}
	key := p
	p.Count = b.counts[key]
	b.counts[key]++
	return b.addPath(p)
}

// AddWalk stores a walk from its four structured fields. The haplotype
// and start fields must be nonnegative integers.
func (b *MetadataBuilder) AddWalk(sample, haplotype, contig, start string) bool {
	phase, err := strconv.ParseUint(haplotype, 10, 64)
	if err != nil {
		return false
	}
	count, err := strconv.ParseUint(start, 10, 64)
	if err != nil {
		return false
	}
	return b.addPath(PathName{
		Sample: b.sample(sample),
		Contig: b.contig(contig),
		Phase:  phase,
		Count:  count,
	})
}

// Parse decomposes a path name with the configured pattern and roles.
// Returns false if the pattern does not match the whole name or a
// numeric role fails to parse.
func (b *MetadataBuilder) Parse(name string) bool {
	match := b.re.FindStringSubmatch(name)
	if match == nil || match[0] != name {
		return false
	}

	p := PathName{}
	haveSample, haveContig, haveCount := false, false, false
	for i, role := range b.fields {
		if i >= len(match) {
			break
		}
		switch role {
		case 'S', 's':
			p.Sample = b.sample(match[i])
			haveSample = true
		case 'C', 'c':
			p.Contig = b.contig(match[i])
			haveContig = true
		case 'H', 'h':
			phase, err := strconv.ParseUint(match[i], 10, 64)
			if err != nil {
				return false
			}
			p.Phase = phase
		case 'F', 'f':
			count, err := strconv.ParseUint(match[i], 10, 64)
			if err != nil {
				return false
			}
			p.Count = count
			haveCount = true
		}
	}
	if !haveSample {
		p.Sample = b.sample("unknown")
	}
	if !haveContig {
		p.Contig = b.contig("unknown")
	}
	if !haveCount {
		key := p
		key.Count = 0
		p.Count = b.counts[key]
		b.counts[key]++
	}
	return b.addPath(p)
}

// Metadata returns a snapshot of everything recorded so far.
func (b *MetadataBuilder) Metadata() *Metadata {
	return &Metadata{
		Samples: append([]string(nil), b.samples...),
		Contigs: append([]string(nil), b.contigs...),
		Paths:   append([]PathName(nil), b.paths...),
	}
}
