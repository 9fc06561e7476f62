package feed

import "fmt"

// Hash32 is the 32-bit rolling hash used to synthesize item IDs when a
// feed omits them. 32 bits means unrelated items sharing the same
// title/link/date can collide; callers dedup on (feed, uniqueID), which
// keeps the blast radius to a single feed, and changing the algorithm
// would reshuffle every synthesized ID in existing stores.
func Hash32(parts ...string) string {
	var h uint32 = 5381
	for _, part := range parts {
		for i := 0; i < len(part); i++ {
			h = h*33 + uint32(part[i])
		}
	}
	return fmt.Sprintf("%08x", h)
}
