package traverse

import (
	"strings"

	"github.com/rivo/uniseg"
)

// nextGrapheme returns the end of the grapheme cluster starting at pos.
// Clusters never extend past limit.
func nextGrapheme(text string, pos, limit int) int {
	limit = min(limit, len(text))
	if pos >= limit {
		return pos
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text[pos:limit], -1)
	return pos + len(cluster)
}

// prevGrapheme returns the start of the grapheme cluster ending at pos.
// Clusters never extend before limit.
func prevGrapheme(text string, pos, limit int) int {
	limit = max(limit, 0)
	if pos <= limit {
		return pos
	}
	seg := text[limit:pos]
	// A line feed always ends a cluster, so scanning can start after the
	// last one before the cluster in question.
	start := strings.LastIndexByte(seg[:len(seg)-1], '\n') + 1

	last := start
	rest := seg[start:]
	state := -1
	for {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if rest == "" {
			break
		}
		last += len(cluster)
	}
	return limit + last
}
