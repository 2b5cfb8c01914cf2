// Package embedding implements the hashed bag-of-tokens feature embedder
// used as the basis for the context covariance spectrum.
package embedding

import (
	"encoding/binary"
	"math"

	"golang.org/x/crypto/blake2b"

	"github.com/weierstrassextremevaluetheorem/eigenslur/internal/textutil"
)

// MinDim is the smallest embedding dimension the embedder accepts.
const MinDim = 32

// tokenHash returns the bucket index (mod dim) and sign (+1/-1) for a token,
// derived from the first 64-bit (big-endian) word of a BLAKE2b-512 digest:
// the word modulo dim selects the bucket, its top bit selects the sign.
func tokenHash(token string, dim int) (int, float64) {
	digest := blake2b.Sum512([]byte(token))
	word := binary.BigEndian.Uint64(digest[:8])
	index := int(word % uint64(dim))
	sign := 1.0
	if (word>>63)&1 == 1 {
		sign = -1.0
	}
	return index, sign
}

// Embed returns a dense, L2-normalized real vector of length dim for text.
// Tokens that hash into the same bucket accumulate; if the resulting vector
// has zero norm it is returned as-is (the zero vector).
func Embed(text string, dim int) []float64 {
	vec := make([]float64, dim)
	for _, token := range textutil.Tokenize(text) {
		idx, sign := tokenHash(token, dim)
		vec[idx] += sign
	}

	var sumSquares float64
	for _, v := range vec {
		sumSquares += v * v
	}
	norm := math.Sqrt(sumSquares)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
