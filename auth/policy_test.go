package auth

import (
	"testing"

	"tgtodo/web-api/model"
	"tgtodo/web-api/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminSecret = "super-secret-admin-pass"

func newTestResolver(t *testing.T) (*Resolver, string) {
	t.Helper()

	argon := security.NewArgon()
	hash, err := argon.GenerateFromPassword(adminSecret)
	require.NoError(t, err)

	r := NewResolver(AdminConfig{
		ChatID: "admin1",
		Secret: adminSecret,
	}, argon)

	return r, hash
}

func TestResolveAdmin(t *testing.T) {
	r, hash := newTestResolver(t)

	id := r.Resolve(&model.User{
		ID:           "admin1",
		Username:     "boss",
		PasswordHash: hash,
	})
	assert.Equal(t, RoleAdmin, id.Role)
	assert.True(t, id.IsAdmin())
	assert.Equal(t, "admin1", id.ID)
	assert.Equal(t, "boss", id.Username)
}

// An id match alone never grants admin, the stored hash must also verify
// against the configured secret.
func TestResolveAdminIDWithWrongHash(t *testing.T) {
	r, _ := newTestResolver(t)

	argon := security.NewArgon()
	otherHash, err := argon.GenerateFromPassword("not-the-admin-secret")
	require.NoError(t, err)

	id := r.Resolve(&model.User{
		ID:           "admin1",
		PasswordHash: otherHash,
	})
	assert.Equal(t, RoleOwner, id.Role)
}

func TestResolveRegularUser(t *testing.T) {
	r, hash := newTestResolver(t)

	// Even with the admin's exact password hash a different id stays an owner
	id := r.Resolve(&model.User{
		ID:           "u1",
		Username:     "alice",
		PasswordHash: hash,
	})
	assert.Equal(t, RoleOwner, id.Role)
	assert.False(t, id.IsAdmin())
}

func TestResolveNoAdminConfigured(t *testing.T) {
	argon := security.NewArgon()
	hash, err := argon.GenerateFromPassword(adminSecret)
	require.NoError(t, err)

	r := NewResolver(AdminConfig{}, argon)

	id := r.Resolve(&model.User{ID: "", PasswordHash: hash})
	assert.Equal(t, RoleOwner, id.Role)
}

func TestCanActOnTodo(t *testing.T) {
	owner := "u1"
	other := "u2"

	tests := []struct {
		name     string
		identity Identity
		ownerID  *string
		want     bool
	}{
		{"owner acts on own todo", Identity{ID: "u1"}, &owner, true},
		{"non-owner denied", Identity{ID: "u1"}, &other, false},
		{"admin acts on anything", Identity{ID: "admin1", Role: RoleAdmin}, &other, true},
		{"orphaned todo denied to owners", Identity{ID: "u1"}, nil, false},
		{"orphaned todo allowed to admin", Identity{ID: "admin1", Role: RoleAdmin}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanActOnTodo(tt.identity, tt.ownerID))
		})
	}
}
