package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna-social/settings-service/internal/db/controller/user"
	"github.com/fortuna-social/settings-service/internal/db/dbtest"
	"github.com/fortuna-social/settings-service/internal/db/models"
)

func TestService_Resolve(t *testing.T) {
	first := &stubProvider{name: "first", token: "one", identity: &Identity{TokenIdentifier: "a|1", Provider: "first"}}
	second := &stubProvider{name: "second", token: "two", identity: &Identity{TokenIdentifier: "b|2", Provider: "second"}}
	s := NewService(nil, first, second)

	assert.Equal(t, []string{"first", "second"}, s.Providers())

	testCases := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "no header", header: ""},
		{name: "first provider", header: "Bearer one", expected: "a|1"},
		{name: "falls through rejection", header: "Bearer two", expected: "b|2"},
		{name: "nobody accepts", header: "Bearer three"},
		{name: "unsupported everywhere", header: basicHeader("u", "p")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			identity := s.Resolve(context.Background(), tc.header)
			if tc.expected == "" {
				assert.Nil(t, identity)
				return
			}

			require.NotNil(t, identity)
			assert.Equal(t, tc.expected, identity.TokenIdentifier)
		})
	}
}

func TestService_ResolveCached(t *testing.T) {
	p := &stubProvider{name: "stub", token: "one", identity: &Identity{TokenIdentifier: "a|1"}}
	storage := &testStorage{}
	s := NewService(NewCache(storage, time.Minute), p)

	for range 3 {
		identity := s.Resolve(context.Background(), "Bearer one")
		require.NotNil(t, identity)
		assert.Equal(t, "a|1", identity.TokenIdentifier)
	}

	assert.Equal(t, 1, p.calls)
	assert.Len(t, storage.data, 1)

	// rejected credentials are never cached
	for range 2 {
		assert.Nil(t, s.Resolve(context.Background(), "Bearer nope"))
	}

	assert.Equal(t, 3, p.calls)
	assert.Len(t, storage.data, 1)
}

func TestService_LocalKeysNotCached(t *testing.T) {
	db := dbtest.New(t)

	oldHash, err := models.HashAPIKey("old-secret")
	require.NoError(t, err)
	dbtest.SeedUsers(t, db, models.User{TokenIdentifier: "local|ops", Role: models.RoleAdmin, APIKeyHash: oldHash})

	storage := &testStorage{}
	s := NewService(NewCache(storage, time.Minute), NewLocalProvider(db))
	ctx := context.Background()

	oldKey := "Bearer " + FormatAPIKey("local|ops", "old-secret")

	identity := s.Resolve(ctx, oldKey)
	require.NotNil(t, identity)
	assert.Equal(t, "local|ops", identity.TokenIdentifier)
	assert.Empty(t, storage.data)

	newHash, err := models.HashAPIKey("new-secret")
	require.NoError(t, err)
	require.NoError(t, user.SetAPIKeyHash(db, "local|ops", newHash))

	assert.Nil(t, s.Resolve(ctx, oldKey), "rotated key must stop working")

	identity = s.Resolve(ctx, "Bearer "+FormatAPIKey("local|ops", "new-secret"))
	require.NotNil(t, identity)
	assert.Equal(t, "local|ops", identity.TokenIdentifier)
	assert.Empty(t, storage.data)
}

func TestService_WithJWT(t *testing.T) {
	jwtProvider := newTestJWTProvider(t)
	s := NewService(nil, NewLocalProvider(nil), jwtProvider)

	token, err := jwtProvider.Issue("user_7", time.Minute)
	require.NoError(t, err)

	identity := s.Resolve(context.Background(), "Bearer "+token)
	require.NotNil(t, identity)
	assert.Equal(t, "fortuna-backend|user_7", identity.TokenIdentifier)
}
