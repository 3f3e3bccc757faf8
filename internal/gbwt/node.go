// Package gbwt holds the bit-packed, bidirectional path index: node
// encoding, the index itself, its incremental builder, and the path
// metadata attached to the index.
package gbwt

// Endmarker is the reserved node encoding; node id 0 cannot be used
// for a real node.
const Endmarker = 0

// EncodeNode packs a node id and an orientation into a single integer.
// Forward and reverse orientations of the same node are adjacent, with
// the forward encoding at the even value.
func EncodeNode(id uint64, isReverse bool) uint64 {
	if isReverse {
		return 2*id + 1
	}
	return 2 * id
}

// NodeID returns the node id of an encoded node.
func NodeID(node uint64) uint64 { return node / 2 }

// NodeIsReverse reports whether an encoded node is in reverse orientation.
func NodeIsReverse(node uint64) bool { return node&1 == 1 }

// FlipNode returns the same node in the opposite orientation.
func FlipNode(node uint64) uint64 { return node ^ 1 }
