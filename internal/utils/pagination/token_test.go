package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	ts := time.Date(2026, 2, 18, 14, 30, 0, 123456789, time.UTC)
	id := "c2b1a6ce-7f3d-4f1e-9f2a-8d4f2a6a5b1c"

	token := EncodeToken(ts, id)
	require.NotEmpty(t, token)

	gotTS, gotID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, ts.Equal(gotTS))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := "MjAyNi0wMi0xOFQxNDozMDowMFo=" // base64 of a bare timestamp
	_, _, err := DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeToken_BadTimestamp(t *testing.T) {
	_, _, err := DecodeToken("YWJjfHR4bi0x") // "abc|txn-1"
	require.Error(t, err)
}
