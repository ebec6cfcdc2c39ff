package service

// Signaler tells a user's open surfaces that their notifications changed. The
// signal carries no content; receivers re-fetch.
type Signaler interface {
	NotifyUser(userID uint)
}

type nopSignaler struct{}

func (nopSignaler) NotifyUser(uint) {}
