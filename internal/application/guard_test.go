package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardLoggedOut(t *testing.T) {
	m, _ := newSessionFixture(t)
	g := NewGuard(m)

	d := g.RequireAuth()
	assert.False(t, d.Allowed)
	assert.Equal(t, LoginPath, d.RedirectTo)

	d = g.RequireOwner()
	assert.False(t, d.Allowed)
	assert.Equal(t, LoginPath, d.RedirectTo)
}

func TestGuardOwner(t *testing.T) {
	m, _ := newSessionFixture(t)
	g := NewGuard(m)
	_, err := m.Login("ann@example.com", "secret1")
	require.NoError(t, err)

	assert.True(t, g.RequireAuth().Allowed)
	assert.True(t, g.RequireOwner().Allowed)
}

func TestGuardSeeker(t *testing.T) {
	m, _ := newSessionFixture(t)
	g := NewGuard(m)
	_, err := m.Login("bob@example.com", "secret2")
	require.NoError(t, err)

	assert.True(t, g.RequireAuth().Allowed)

	d := g.RequireOwner()
	assert.False(t, d.Allowed)
	assert.Equal(t, DashboardPath, d.RedirectTo, "authenticated non-owners go to the dashboard")
}
