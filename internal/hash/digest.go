package hash

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Sum computes the xxHash64 of the given payload.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ETag renders the payload digest as a strong HTTP entity tag: a quoted,
// zero-padded 16 digit lowercase hex string.
func ETag(data []byte) string {
	const width = 16

	hex := strconv.FormatUint(Sum(data), 16)
	buf := make([]byte, 0, width+2)
	buf = append(buf, '"')
	for i := len(hex); i < width; i++ {
		buf = append(buf, '0')
	}
	buf = append(buf, hex...)
	buf = append(buf, '"')

	return string(buf)
}
