package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	_, ok := TokenFrom(context.Background())
	assert.False(t, ok)

	ctx := WithToken(context.Background(), "jwt-1")
	tok, ok := TokenFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "jwt-1", tok)

	_, ok = TokenFrom(WithToken(context.Background(), ""))
	assert.False(t, ok)
}
