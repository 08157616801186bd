package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		sum  uint64
	}{
		{"nil payload", nil, 0xef46db3751d8e999},
		{"empty payload", []byte{}, 0xef46db3751d8e999},
		{"short payload", []byte("test"), 0x4fdcca5ddb678139},
		{"long payload", []byte("this is a longer test string to hash"), 0x69275f7f7ee59dbd},
		{"another payload", []byte("another test string"), 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, Sum(tt.data))
		})
	}
}

func TestETag(t *testing.T) {
	assert.Equal(t, `"ef46db3751d8e999"`, ETag(nil))
	assert.Equal(t, `"4fdcca5ddb678139"`, ETag([]byte("test")))

	assert.Len(t, ETag([]byte("x")), 18)
	assert.Len(t, ETag(randPayload(64)), 18)

	payload := randPayload(128)
	assert.Equal(t, ETag(payload), ETag(append([]byte(nil), payload...)))
}

func randPayload(n int) []byte {
	b := make([]byte, n)
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range b {
		b[i] = byte(seededRand.Intn(256))
	}

	return b
}

func BenchmarkSum(b *testing.B) {
	payload := randPayload(256 * 1024)
	b.SetBytes(int64(len(payload)))
	b.ResetTimer()
	for b.Loop() {
		Sum(payload)
	}
}
