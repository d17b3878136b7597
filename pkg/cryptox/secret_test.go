package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"simple secret", "harvest-secret-key"},
		{"complex secret", "P@ssw0rd!#$%^&*()"},
		{"long secret", strings.Repeat("a", 100)},
		{"empty secret", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashSecret(tt.secret)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")
		})
	}
}

func TestHashSecret_UniqueSalts(t *testing.T) {
	hash1, err := HashSecret("samesecret")
	require.NoError(t, err)
	hash2, err := HashSecret("samesecret")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
}

func TestVerifySecret(t *testing.T) {
	hash, err := HashSecret("party-secret-key")
	require.NoError(t, err)

	t.Run("correct secret", func(t *testing.T) {
		require.NoError(t, VerifySecret("party-secret-key", hash))
	})

	t.Run("wrong secret", func(t *testing.T) {
		require.ErrorIs(t, VerifySecret("wrong", hash), ErrSecretMismatch)
	})

	t.Run("malformed hash", func(t *testing.T) {
		err := VerifySecret("party-secret-key", "$argon2id$broken")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrSecretMismatch)
	})
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret()
	require.NoError(t, err)
	b, err := GenerateSecret()
	require.NoError(t, err)

	require.Len(t, a, 32)
	require.NotEqual(t, a, b)
}
