package domain

// Identity is the authenticated caller as reported by the identity provider.
// Every core operation receives it explicitly.
type Identity struct {
	UserID uint
	Email  string
}

func (i Identity) Authenticated() bool {
	return i.UserID != 0
}
