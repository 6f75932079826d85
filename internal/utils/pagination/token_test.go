package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC)
	id := "3f1c2a9e-0b7d-4c11-9a6f-2d8e5b7c1f00"

	token := EncodeToken(createdAt, id)
	require.NotEmpty(t, token)

	gotTime, gotID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime), "round-tripped time should match")
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := DecodeToken("not-valid-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	// Valid base64, but the payload has no separator.
	token := EncodeToken(time.Now(), "")
	_, _, err := DecodeToken(token)
	assert.NoError(t, err, "empty ID is still a well-formed token")

	_, _, err = DecodeToken("aGVsbG8=") // "hello"
	assert.Error(t, err)
}

func TestDecodeToken_BadTimestamp(t *testing.T) {
	_, _, err := DecodeToken("bm90LWEtdGltZXxhYmM=") // "not-a-time|abc"
	assert.Error(t, err)
}
