package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Correct1Horse")
	require.NoError(t, err)
	require.NotEqual(t, "Correct1Horse", hash)

	// le bon mot de passe passe, un mauvais non
	require.True(t, CheckPassword("Correct1Horse", hash))
	require.False(t, CheckPassword("Wrong1Horse", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	// deux hash du meme mdp doivent differer (sel aleatoire)
	hash1, err := HashPassword("Correct1Horse")
	require.NoError(t, err)
	hash2, err := HashPassword("Correct1Horse")
	require.NoError(t, err)
	require.NotEqual(t, hash1, hash2)

	require.True(t, CheckPassword("Correct1Horse", hash1))
	require.True(t, CheckPassword("Correct1Horse", hash2))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	// un hash invalide est un echec de verification, jamais une panique
	require.False(t, CheckPassword("Correct1Horse", ""))
	require.False(t, CheckPassword("Correct1Horse", "pas-un-hash-bcrypt"))
}
