package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier(map[string]string{
		"tok-alpha": "user-1",
		"tok-beta":  "user-2",
	})

	uid, err := v.Verify(context.Background(), "tok-alpha")
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)

	_, err = v.Verify(context.Background(), "tok-unknown")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestStaticVerifier_CopiesInput(t *testing.T) {
	tokens := map[string]string{"tok": "user-1"}
	v := NewStaticVerifier(tokens)
	delete(tokens, "tok")

	uid, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}
