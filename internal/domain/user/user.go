// Package user holds the session-owned user aggregate: profile fields and
// the address book.
package user

// Address is a shipping destination. At most one address in a user's book
// is marked default.
type Address struct {
	ID         string
	Name       string
	Phone      string
	Line1      string
	City       string
	State      string
	PostalCode string
	Default    bool
}

// User is the client projection of the authenticated account.
type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Addresses []Address
}

// Session pairs the authenticated user with its bearer token. Both halves
// are persisted locally so a restart stays signed in.
type Session struct {
	Token string
	User  User
}

// Authenticated reports whether a signed-in session is present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User.ID != ""
}

// AddressByID returns the address with the given id, or nil.
func (u *User) AddressByID(id string) *Address {
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			return &u.Addresses[i]
		}
	}
	return nil
}

// DefaultAddress returns the address marked default, or nil when none is.
// If the server ever hands back more than one default, the first wins.
func (u *User) DefaultAddress() *Address {
	for i := range u.Addresses {
		if u.Addresses[i].Default {
			return &u.Addresses[i]
		}
	}
	return nil
}

// ResolveShipping runs the checkout prefill chain once: the preferred saved
// address, else the default address, else an address synthesized from the
// primitive profile fields. The result seeds the form and must not be
// re-applied over user edits.
func (u *User) ResolveShipping(preferredID string) Address {
	if preferredID != "" {
		if a := u.AddressByID(preferredID); a != nil {
			return *a
		}
	}
	if a := u.DefaultAddress(); a != nil {
		return *a
	}
	return Address{
		Name:  u.Name,
		Phone: u.Phone,
	}
}
