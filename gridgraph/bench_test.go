package gridgraph_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/katalvlaran/crucible/gridgraph"
)

// randomDigits builds an n×n digit map with a fixed seed.
func randomDigits(n int) string {
	rng := rand.New(rand.NewSource(42))
	var sb strings.Builder
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			sb.WriteByte(byte('1' + rng.Intn(9)))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// BenchmarkParse measures ingestion of a 141×141 digit map.
// Complexity: O(W×H)
func BenchmarkParse(b *testing.B) {
	input := randomDigits(141)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gridgraph.ParseString(input); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDigest measures hashing of a 141×141 grid.
// Complexity: O(W×H)
func BenchmarkDigest(b *testing.B) {
	gg := gridgraph.MustParse(randomDigits(141))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gg.Digest()
	}
}
