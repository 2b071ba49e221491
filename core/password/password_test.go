package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	digest, err := h.Hash("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", digest)

	assert.True(t, h.Verify("123456", digest))
	assert.False(t, h.Verify("1234567", digest))
	assert.False(t, h.Verify("123456", "not-a-digest"))
}

func TestNewBcrypt_DefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).Cost)
}
