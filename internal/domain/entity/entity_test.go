package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleOwner.Valid())
	assert.True(t, RoleSeeker.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestRolePredicatesNilSafe(t *testing.T) {
	var u *User
	assert.False(t, u.IsOwner())
	assert.False(t, u.IsSeeker())

	assert.True(t, (&User{Role: RoleOwner}).IsOwner())
	assert.True(t, (&User{Role: RoleSeeker}).IsSeeker())
}

func TestCoverURLFallback(t *testing.T) {
	assert.Equal(t, PlaceholderImageURL, (&Book{}).CoverURL())
	assert.Equal(t, "https://x.y/c.jpg", (&Book{ImageURL: "https://x.y/c.jpg"}).CoverURL())
}

// The wire layout must stay camelCase so values written by earlier builds
// still decode.
func TestBookJSONLayout(t *testing.T) {
	b := Book{
		ID: "b1", Title: "T", Author: "A", Location: "L", Contact: "c",
		OwnerID: "o1", OwnerName: "Ann", IsAvailable: true, CreatedAt: "2026-01-02T03:04:05Z",
	}
	raw, err := json.Marshal(b)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Contains(t, m, "ownerId")
	assert.Contains(t, m, "ownerName")
	assert.Contains(t, m, "isAvailable")
	assert.Contains(t, m, "createdAt")
	assert.NotContains(t, m, "genre", "empty genre is omitted")
	assert.NotContains(t, m, "imageUrl", "empty image is omitted")
}
