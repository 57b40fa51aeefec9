// Package hash provides the single xxHash64 primitive chunkcube uses to
// fingerprint byte ranges for corruption diagnostics.
package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
