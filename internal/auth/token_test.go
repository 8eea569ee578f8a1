package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager("super-secret", time.Hour)

	tok, err := tm.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := tm.Verify(tok)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("secret", -time.Second)

	tok, err := tm.Issue("u1")
	require.NoError(t, err)

	_, err = tm.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("right-secret", time.Hour)
	verifier := NewTokenManager("wrong-secret", time.Hour)

	tok, err := issuer.Issue("u2")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
