// Package random provides the deterministic pseudo-random sequences that
// place stars, particles and glows in the rendered documents.
//
// Values are derived from an MD5 digest of the seed string and the element
// index, so the same seed always yields the same sequence across runs and
// platforms. Nothing here is suitable for cryptographic use.
package random

import (
	"crypto/md5"
	"encoding/binary"
	"strconv"
)

const maxUint32 = float64(0xFFFFFFFF)

// Values returns count values in [min, max] derived from seed.
//
// Element i is min + n*(max-min), where n is the first four bytes of
// md5(seed + "_" + i) read big-endian and divided by 0xFFFFFFFF.
// A non-positive count yields an empty slice.
func Values(seed string, count int, min, max float64) []float64 {
	if count <= 0 {
		return []float64{}
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = min + unit(seed, i)*(max-min)
	}
	return out
}

func unit(seed string, i int) float64 {
	sum := md5.Sum([]byte(seed + "_" + strconv.Itoa(i)))
	return float64(binary.BigEndian.Uint32(sum[:4])) / maxUint32
}
