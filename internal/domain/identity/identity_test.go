package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleHost, ParseRole("host"))
	assert.Equal(t, RoleHost, ParseRole(" HOST "))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleGuest, ParseRole("guest"))
	assert.Equal(t, RoleGuest, ParseRole(""))
	assert.Equal(t, RoleGuest, ParseRole("superuser"))
}

func TestCaller(t *testing.T) {
	assert.False(t, Caller{}.Known())
	assert.False(t, Caller{ID: "  "}.Known())
	assert.True(t, Caller{ID: "u1"}.Known())

	assert.True(t, Caller{ID: "u1", Role: RoleHost}.CanManageListings())
	assert.True(t, Caller{ID: "u1", Role: RoleAdmin}.CanManageListings())
	assert.False(t, Caller{ID: "u1", Role: RoleGuest}.CanManageListings())
}
