package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itcguard/itc-api/pkg/jwt"
)

const (
	secret = "test-secret"
	issuer = "itc-api-test"
)

var owner = jwt.Identity{UserID: "u-1", BusinessID: "b-1", Role: jwt.RoleOwner}

func TestGenerateAndParse(t *testing.T) {
	tok, err := jwt.Generate(secret, issuer, owner, 60)
	require.NoError(t, err)

	id, err := jwt.Parse(secret, issuer, tok)
	require.NoError(t, err)
	assert.Equal(t, owner, id)
}

func TestParse_Rejects(t *testing.T) {
	tok, err := jwt.Generate(secret, issuer, owner, 60)
	require.NoError(t, err)
	expired, err := jwt.Generate(secret, issuer, owner, -1)
	require.NoError(t, err)

	_, err = jwt.Parse("other-secret", issuer, tok)
	assert.Error(t, err, "wrong secret")

	_, err = jwt.Parse(secret, "someone-else", tok)
	assert.Error(t, err, "wrong issuer")

	_, err = jwt.Parse(secret, issuer, expired)
	assert.Error(t, err, "expired")

	_, err = jwt.Parse(secret, issuer, "not.a.token")
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := jwt.Generate("", issuer, owner, 60)
	assert.Error(t, err)
	_, err = jwt.Parse("", issuer, "x")
	assert.Error(t, err)
}
