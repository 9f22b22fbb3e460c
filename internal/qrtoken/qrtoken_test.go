package qrtoken

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	for _, id := range []string{
		"5c6f2d1e-9a9b-4a83-b1a1-000000000001",
		"abc",
		"id-with-dashes-and-123",
	} {
		token := Issue(id, "secret-a")
		ok, got := Verify(token, "secret-a")
		require.True(t, ok, "token %q should verify", token)
		assert.Equal(t, id, got)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token := Issue("reg-1", "secret-a")
	ok, got := Verify(token, "secret-b")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestVerifyMalformed(t *testing.T) {
	for _, token := range []string{
		"",
		"no-separator",
		"too|many|parts",
		"|abcdef0123456789",
		"reg-1|",
		"reg-1|wronglength",
	} {
		ok, got := Verify(token, "secret-a")
		assert.False(t, ok, "token %q must not verify", token)
		assert.Empty(t, got)
	}
}

func TestTokenShape(t *testing.T) {
	token := Issue("reg-42", "s")
	parts := strings.Split(token, "|")
	require.Len(t, parts, 2)
	assert.Equal(t, "reg-42", parts[0])
	assert.Len(t, parts[1], 16)
}

func TestForgedIDRejected(t *testing.T) {
	token := Issue("reg-1", "secret-a")
	fp := strings.Split(token, "|")[1]
	ok, _ := Verify("reg-2|"+fp, "secret-a")
	assert.False(t, ok)
}

func TestRenderDataURI(t *testing.T) {
	uri, err := RenderDataURI(Issue("reg-1", "s"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}
