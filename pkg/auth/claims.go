package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims issued to shop staff and integrations.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	ShopID   string    `json:"shop_id"`
	Roles    []string  `json:"roles"`
}

// HasRole reports whether the claims include role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// HasAnyRole reports whether the claims include at least one of roles.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}

// Actor is the name recorded against audited actions.
func (c Claims) Actor() string {
	if c.Username != "" {
		return c.Username
	}
	return c.UserID.String()
}

// CanAccessShop reports whether the caller may act on shopID. Admins and
// callers not bound to a shop may act on any shop.
func (c Claims) CanAccessShop(shopID string) bool {
	return c.ShopID == "" || c.HasRole(RoleAdmin) || c.ShopID == shopID
}

// VisibleShop is the only shop whose records the caller may see, or "" when
// the caller sees every shop.
func (c Claims) VisibleShop() string {
	if c.HasRole(RoleAdmin) {
		return ""
	}
	return c.ShopID
}

// ResolveShop returns the shop a request acts on: requested when set,
// otherwise the caller's own shop. ok is false when requested is outside
// the caller's scope.
func (c Claims) ResolveShop(requested string) (shopID string, ok bool) {
	if requested == "" {
		return c.ShopID, true
	}
	return requested, c.CanAccessShop(requested)
}

// Roles.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleStaff     = "staff"
	RoleAuditor   = "auditor"
	RoleAPIClient = "api_client"
)
