package policy

import (
	"testing"

	"backoffice/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAllows(t *testing.T) {
	cases := []struct {
		role string
		cap  Capability
		want bool
	}{
		{model.RoleAdmin, UsersManage, true},
		{model.RoleAdmin, CatalogWrite, true},
		{model.RoleManager, CatalogWrite, true},
		{model.RoleManager, UsersManage, false},
		{model.RoleManager, ImportsRun, true},
		{model.RoleViewer, CatalogRead, true},
		{model.RoleViewer, CatalogWrite, false},
		{model.RoleViewer, ContentWrite, false},
		{model.RoleViewer, OrdersManage, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Allows(tc.role, tc.cap), "%s / %s", tc.role, tc.cap)
	}
}

func TestAllows_UnknownRoleOrCapability(t *testing.T) {
	assert.False(t, Allows("superadmin", CatalogRead))
	assert.False(t, Allows("", CatalogRead))
	assert.False(t, Allows(model.RoleAdmin, Capability("unknown.cap")))
}

func TestEveryCapabilityGrantedToAdmin(t *testing.T) {
	for cap := range grants {
		assert.True(t, Allows(model.RoleAdmin, cap), "admin should hold %s", cap)
	}
}
