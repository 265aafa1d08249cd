package gateway

import (
	"testing"

	"meal-market/models"

	"github.com/stretchr/testify/assert"
)

func customer() *Session { return &Session{UserID: 1, Role: models.RoleCustomer} }
func provider() *Session { return &Session{UserID: 2, Role: models.RoleProvider} }
func admin() *Session    { return &Session{UserID: 3, Role: models.RoleAdmin} }

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		session *Session
		want    Decision
	}{
		{
			name:    "anonymous on login page",
			path:    "/login",
			session: nil,
			want:    Allow(),
		},
		{
			name:    "anonymous on register page",
			path:    "/register",
			session: nil,
			want:    Allow(),
		},
		{
			name:    "anonymous on open catalog",
			path:    "/providers/7/menu",
			session: nil,
			want:    Allow(),
		},
		{
			name:    "anonymous on provider dashboard",
			path:    "/provider-dashboard/meals",
			session: nil,
			want:    RedirectTo("/login"),
		},
		{
			name:    "anonymous on customer dashboard",
			path:    "/dashboard/cart",
			session: nil,
			want:    RedirectTo("/login"),
		},
		{
			name:    "anonymous on admin dashboard root",
			path:    "/admin-dashboard",
			session: nil,
			want:    RedirectTo("/login"),
		},
		{
			name:    "authenticated customer on login page",
			path:    "/login",
			session: customer(),
			want:    RedirectTo("/dashboard"),
		},
		{
			name:    "authenticated provider on forgot-password page",
			path:    "/forgot-password",
			session: provider(),
			want:    RedirectTo("/provider-dashboard"),
		},
		{
			name:    "customer in own namespace",
			path:    "/dashboard/orders/9",
			session: customer(),
			want:    Allow(),
		},
		{
			name:    "customer in provider namespace",
			path:    "/provider-dashboard/meals",
			session: customer(),
			want:    RedirectTo("/dashboard"),
		},
		{
			name:    "provider in customer namespace",
			path:    "/dashboard/cart",
			session: provider(),
			want:    RedirectTo("/provider-dashboard"),
		},
		{
			name:    "provider in admin namespace",
			path:    "/admin-dashboard/orders",
			session: provider(),
			want:    RedirectTo("/provider-dashboard"),
		},
		{
			name:    "admin in own namespace",
			path:    "/admin-dashboard/users",
			session: admin(),
			want:    Allow(),
		},
		{
			name:    "admin in customer namespace",
			path:    "/dashboard",
			session: admin(),
			want:    RedirectTo("/admin-dashboard"),
		},
		{
			name:    "provider namespace is not the customer one",
			path:    "/provider-dashboard",
			session: provider(),
			want:    Allow(),
		},
		{
			name:    "authenticated on unscoped path",
			path:    "/profile",
			session: customer(),
			want:    Allow(),
		},
		{
			name:    "prefix lookalike is not role-scoped",
			path:    "/dashboardia",
			session: nil,
			want:    Allow(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.path, tt.session))
		})
	}
}

func TestRoleHome(t *testing.T) {
	assert.Equal(t, "/dashboard", RoleHome(models.RoleCustomer))
	assert.Equal(t, "/provider-dashboard", RoleHome(models.RoleProvider))
	assert.Equal(t, "/admin-dashboard", RoleHome(models.RoleAdmin))
	assert.Equal(t, "/login", RoleHome(models.UserRole("ghost")))
}
