package authentication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestTokenRoundTrip(t *testing.T) {
	keyring.MockInit()

	_, err := GetTokens()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	creds := &StoredCredentials{AccessToken: "tok", APIURL: "http://localhost:8080", ExpiresAt: time.Now().Add(time.Hour).Unix()}
	require.NoError(t, StoreTokens(creds))

	got, err := GetTokens()
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	require.NoError(t, DeleteTokens())
	_, err = GetTokens()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	// deleting twice is fine
	assert.NoError(t, DeleteTokens())
}

func TestGetTokens_Expired(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, StoreTokens(&StoredCredentials{AccessToken: "old", ExpiresAt: time.Now().Add(-time.Minute).Unix()}))

	_, err := GetTokens()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestExpired(t *testing.T) {
	now := time.Unix(1000, 0)
	assert.False(t, (&StoredCredentials{}).Expired(now))
	assert.False(t, (&StoredCredentials{ExpiresAt: 1001}).Expired(now))
	assert.True(t, (&StoredCredentials{ExpiresAt: 1000}).Expired(now))
}
