package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, passphrase string) *Codec {
	t.Helper()
	c, err := New(passphrase, []byte("fintrack-test-salt"))
	require.NoError(t, err)
	return c
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := newTestCodec(t, "correct horse battery staple")
	plaintext := []byte("Groceries")

	sealed, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, []byte(sealed))

	opened, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestEncryptProducesFreshNonces(t *testing.T) {
	c := newTestCodec(t, "passphrase")
	a, err := c.Encrypt([]byte("same plaintext"))
	require.NoError(t, err)
	b, err := c.Encrypt([]byte("same plaintext"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	sealed, err := newTestCodec(t, "alice").Encrypt([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestCodec(t, "mallory").Decrypt(sealed)
	assert.Error(t, err)
}

func TestDecryptTruncatedCiphertext(t *testing.T) {
	c := newTestCodec(t, "passphrase")
	_, err := c.Decrypt([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrCipherTooShort)
}

func TestCanonicalAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"10", "10.00"},
		{"10.5", "10.50"},
		{"0.07", "0.07"},
		{"-3.20", "-3.20"},
		{"1234567.89", "1234567.89"},
	}
	for _, tc := range cases {
		got, err := CanonicalAmount(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got)
	}
}

func TestCanonicalAmountRejectsBadInput(t *testing.T) {
	for _, raw := range []string{"", "abc", "10.001", "1e-5"} {
		_, err := CanonicalAmount(raw)
		assert.ErrorIs(t, err, ErrInvalidAmount, raw)
	}
}

func TestAmountRoundTrip(t *testing.T) {
	c := newTestCodec(t, "passphrase")
	sealed, err := c.EncryptAmount("42.5")
	require.NoError(t, err)

	value, err := c.DecryptAmount(sealed)
	require.NoError(t, err)
	assert.Equal(t, "42.50", value.StringFixed(2))
}

func TestTimeRoundTripIsUTCSecondPrecision(t *testing.T) {
	c := newTestCodec(t, "passphrase")
	loc := time.FixedZone("CEST", 2*60*60)
	spent := time.Date(2026, 8, 23, 14, 30, 12, 999, loc)

	sealed, err := c.EncryptTime(spent)
	require.NoError(t, err)

	got, err := c.DecryptTime(sealed)
	require.NoError(t, err)
	assert.Equal(t, spent.UTC().Truncate(time.Second), got)
	assert.Equal(t, time.UTC, got.Location())
}
