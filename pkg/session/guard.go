package session

import "smartcampus/pkg/model"

// GuardState is what a navigation into a protected view resolves to.
type GuardState int

const (
	// GuardLoading renders a neutral placeholder and performs no
	// navigation; the startup revalidation is still in flight.
	GuardLoading GuardState = iota
	// GuardAuthenticated renders the requested protected view.
	GuardAuthenticated
	// GuardUnauthenticated redirects to the login view. The attempted
	// deep link is discarded.
	GuardUnauthenticated
)

func (s GuardState) String() string {
	switch s {
	case GuardLoading:
		return "loading"
	case GuardAuthenticated:
		return "authenticated"
	case GuardUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// ResolveGuard maps raw session state to a guard decision. Kept pure so the
// transition table is testable without a provider.
func ResolveGuard(loading bool, user *model.User) GuardState {
	if loading {
		return GuardLoading
	}
	if user != nil {
		return GuardAuthenticated
	}
	return GuardUnauthenticated
}

// Guard resolves the current guard state. The UI calls this on every
// navigation into a protected view, not only at startup.
func (p *Provider) Guard() GuardState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return ResolveGuard(p.loading, p.user)
}
