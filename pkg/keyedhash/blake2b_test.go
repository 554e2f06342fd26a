package keyedhash_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/dmitrymomot/loginlink/pkg/keyedhash"
)

func TestSum_KnownVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "786a02f742015903c6c6fd852552d272912f4740e15847618a86e217f71f5419d25e1031afee585313896444934eb04b903a685b1448b755d56f701afe9be2ce",
		},
		{
			name:  "abc",
			input: "abc",
			want:  "ba80a53f981c4d0d6a2797b69f12f6e94c212f14685ac4b74b12bb6fdbffa2d17d87c5392aab792dc252d5de4533cc9518d38aa8dbf1925ab92386edd4009923",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := keyedhash.Sum([]byte(tt.input), nil, nil, keyedhash.Size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(got))
		})
	}
}

func TestSum_MatchesReferenceWithoutPersonalization(t *testing.T) {
	t.Parallel()

	// Lengths straddle the block boundary so that buffering of the final
	// block is exercised with and without a key block in front of it.
	lengths := []int{0, 1, 63, 127, 128, 129, 255, 256, 257, 1000}
	keys := [][]byte{nil, []byte("k"), bytes.Repeat([]byte{0xA5}, 32), bytes.Repeat([]byte{0x5A}, 64)}
	sizes := []int{1, 10, 32, 64}

	for _, n := range lengths {
		msg := make([]byte, n)
		for i := range msg {
			msg[i] = byte(i * 7)
		}
		for _, key := range keys {
			for _, size := range sizes {
				ref, err := blake2b.New(size, key)
				require.NoError(t, err)
				ref.Write(msg)

				got, err := keyedhash.Sum(msg, key, nil, size)
				require.NoError(t, err)
				require.Equal(t, ref.Sum(nil), got, "len=%d key=%d size=%d", n, len(key), size)
			}
		}
	}
}

func TestSum_PersonalizationSeparatesDomains(t *testing.T) {
	t.Parallel()

	key := []byte("shared-key")
	msg := []byte("same message")

	plain, err := keyedhash.Sum(msg, key, nil, 16)
	require.NoError(t, err)
	first, err := keyedhash.Sum(msg, key, []byte("app.tokens.v1"), 16)
	require.NoError(t, err)
	second, err := keyedhash.Sum(msg, key, []byte("app.tokens.v2"), 16)
	require.NoError(t, err)

	assert.NotEqual(t, plain, first)
	assert.NotEqual(t, first, second)

	// Short labels are zero-padded to the full field width.
	padded, err := keyedhash.Sum(msg, key, append([]byte("app.tokens.v1"), 0, 0, 0), 16)
	require.NoError(t, err)
	assert.Equal(t, first, padded)
}

func TestSum_SmallerDigestIsNotPrefix(t *testing.T) {
	t.Parallel()

	long, err := keyedhash.Sum([]byte("data"), []byte("key"), []byte("label"), 20)
	require.NoError(t, err)
	short, err := keyedhash.Sum([]byte("data"), []byte("key"), []byte("label"), 10)
	require.NoError(t, err)

	assert.Len(t, short, 10)
	assert.NotEqual(t, long[:10], short)
}

func TestNew_StreamingMatchesOneShot(t *testing.T) {
	t.Parallel()

	msg := bytes.Repeat([]byte("streaming input "), 40)
	want, err := keyedhash.Sum(msg, []byte("key"), []byte("label"), 32)
	require.NoError(t, err)

	h, err := keyedhash.New(32, []byte("key"), []byte("label"))
	require.NoError(t, err)
	for _, chunk := range [][]byte{msg[:3], msg[3:130], msg[130:131], msg[131:400], msg[400:]} {
		h.Write(chunk)
	}
	assert.Equal(t, want, h.Sum(nil))

	// Sum does not change the running state.
	assert.Equal(t, want, h.Sum(nil))

	h.Reset()
	h.Write(msg)
	assert.Equal(t, want, h.Sum(nil))
	assert.Equal(t, 32, h.Size())
	assert.Equal(t, keyedhash.BlockSize, h.BlockSize())
}

func TestSum_PersonalizedKnownVector(t *testing.T) {
	t.Parallel()

	got, err := keyedhash.Sum(
		bytes.Repeat([]byte("x"), 300),
		bytes.Repeat([]byte("k"), 64),
		bytes.Repeat([]byte("p"), 16),
		keyedhash.Size,
	)
	require.NoError(t, err)
	assert.Equal(t,
		"ef6b189641903ff2561360fd7cbe8e651f6c94b0bb46c2245a4955b196a68b7b99ef2e9c83b50a3dee026b6019b044413e5a4067484e34a13bf7f535578e9529",
		hex.EncodeToString(got),
	)

	short, err := keyedhash.Sum([]byte("abc"), []byte("key"), []byte("sesame.tokens_v2"), 10)
	require.NoError(t, err)
	assert.Equal(t, "f7553ddda072e09a8067", hex.EncodeToString(short))
}

func TestNew_InvalidParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		key     []byte
		person  []byte
		wantErr error
	}{
		{"zero size", 0, nil, nil, keyedhash.ErrInvalidSize},
		{"oversized digest", 65, nil, nil, keyedhash.ErrInvalidSize},
		{"long key", 10, make([]byte, 65), nil, keyedhash.ErrKeyTooLong},
		{"long person", 10, nil, make([]byte, 17), keyedhash.ErrPersonTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := keyedhash.New(tt.size, tt.key, tt.person)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func BenchmarkSum(b *testing.B) {
	key := bytes.Repeat([]byte{1}, 32)
	msg := make([]byte, 64)
	for b.Loop() {
		_, _ = keyedhash.Sum(msg, key, []byte("bench"), 10)
	}
}
