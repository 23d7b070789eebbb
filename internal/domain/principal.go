package domain

// Capability is a permission checked at the route or service boundary instead
// of comparing role strings.
type Capability string

const (
	CapBook              Capability = "book"
	CapViewOwnerBookings Capability = "view_owner_bookings"
	CapRequestDiscount   Capability = "request_discount"
	CapManageDiscounts   Capability = "manage_discounts"
)

var roleCapabilities = map[UserRole][]Capability{
	RoleUser:  {CapBook},
	RoleOwner: {CapBook, CapViewOwnerBookings, CapRequestDiscount},
	RoleAdmin: {CapBook, CapManageDiscounts},
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID  int64
	Name    string
	Email   string
	Role    UserRole
	Blocked bool
}

func NewPrincipal(u *User) Principal {
	return Principal{
		UserID:  u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Blocked: u.IsBlocked,
	}
}

// Can reports whether the principal holds the capability. Blocked users hold none.
func (p Principal) Can(c Capability) bool {
	if p.UserID == 0 || p.Blocked {
		return false
	}
	for _, have := range roleCapabilities[p.Role] {
		if have == c {
			return true
		}
	}
	return false
}
