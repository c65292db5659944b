package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"smartcampus/pkg/api"
	"smartcampus/pkg/model"
)

// nowFunc is swapped out in tests.
var nowFunc = time.Now

// Gateway is the slice of the REST client the session needs. *api.Client
// satisfies it; tests substitute a mock.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	CurrentUser(ctx context.Context) (*model.User, error)
	Register(ctx context.Context, req api.RegisterRequest) error
	SetToken(token string)
	ClearToken()
}

// Provider is the single source of truth for "who is logged in". It owns
// the credential store and the gateway's bearer token; every other
// component reads derived state through it and re-renders via OnChange.
type Provider struct {
	mu      sync.RWMutex
	user    *model.User
	token   string
	loading bool
	seq     uint64 // last issued credential submission

	gw    Gateway
	creds *CredentialStore

	initOnce sync.Once

	// OnChange fires after every session transition, outside the lock.
	OnChange func()
	// OnNotice surfaces user-visible outcomes (toasts). success selects
	// the presentation, message is already human-readable.
	OnNotice func(success bool, message string)
}

// NewProvider creates the session provider. The session starts loading
// until Initialize completes.
func NewProvider(gw Gateway, creds *CredentialStore) *Provider {
	return &Provider{gw: gw, creds: creds, loading: true}
}

// Initialize revalidates any persisted token against the backend. It runs
// exactly once per process; later calls are no-ops. With no persisted
// token it finishes without touching the network. Any revalidation failure
// silently clears the session; a stale token on first load is the
// expected steady state, not an error worth a notification.
func (p *Provider) Initialize(ctx context.Context) {
	p.initOnce.Do(func() { p.initialize(ctx) })
}

func (p *Provider) initialize(ctx context.Context) {
	defer p.finishLoading()

	token, err := p.creds.Load()
	if err != nil {
		slog.Warn("stored credentials unreadable, clearing", "err", err)
		p.clearStored()
		return
	}
	if token == "" {
		return
	}
	if tokenExpired(token) {
		slog.Info("stored token expired, clearing")
		p.clearStored()
		return
	}

	p.gw.SetToken(token)
	user, err := p.gw.CurrentUser(ctx)
	if err != nil {
		slog.Info("session revalidation failed, clearing", "err", err)
		p.gw.ClearToken()
		p.clearStored()
		return
	}

	p.mu.Lock()
	p.token = token
	p.user = user
	p.mu.Unlock()
	slog.Info("session restored", "user", user.Email, "role", user.Role.String())
}

func (p *Provider) finishLoading() {
	p.mu.Lock()
	p.loading = false
	p.mu.Unlock()
	p.notifyChange()
}

func (p *Provider) clearStored() {
	if err := p.creds.Clear(); err != nil {
		slog.Error("clear credentials", "err", err)
	}
}

// Login submits credentials. On success the token is persisted and the
// user installed atomically, and true is returned. On failure the prior
// session state is left untouched, the failure is surfaced through
// OnNotice, and false is returned. Login never panics across its boundary.
//
// Concurrent submissions follow last-write-wins: each call takes a
// sequence number, and a response is applied only if no newer submission
// has been issued since.
func (p *Provider) Login(ctx context.Context, email, password string) bool {
	seq := p.issue()

	res, err := p.gw.Login(ctx, email, password)
	if err != nil {
		slog.Info("login failed", "email", email, "err", err)
		p.notify(false, api.UserMessage(err))
		return false
	}

	p.mu.Lock()
	if seq != p.seq {
		p.mu.Unlock()
		slog.Debug("discarding stale login response", "seq", seq)
		return false
	}
	if err := p.creds.Save(res.Token); err != nil {
		// The session still works for this run; only restore-on-restart
		// is lost.
		slog.Error("persist token", "err", err)
	}
	p.gw.SetToken(res.Token)
	p.token = res.Token
	p.user = res.User
	p.mu.Unlock()

	slog.Info("logged in", "user", res.User.Email, "role", res.User.Role.String())
	p.notifyChange()
	p.notify(true, "Login successful")
	return true
}

// Logout clears the session. It is synchronous, needs no network call,
// and always succeeds. Any in-flight credential submission is invalidated.
func (p *Provider) Logout() {
	p.mu.Lock()
	p.seq++ // in-flight responses become stale
	p.token = ""
	p.user = nil
	p.mu.Unlock()

	p.gw.ClearToken()
	p.clearStored()

	slog.Info("logged out")
	p.notifyChange()
	p.notify(true, "Logged out successfully")
}

// Register creates an account without authenticating the caller. True
// means the caller should route to the login view.
func (p *Provider) Register(ctx context.Context, req api.RegisterRequest) bool {
	if err := p.gw.Register(ctx, req); err != nil {
		slog.Info("registration failed", "email", req.Email, "err", err)
		p.notify(false, api.UserMessage(err))
		return false
	}
	p.notify(true, "Account created! Please login.")
	return true
}

// RefreshUser re-fetches the account record, typically after a profile
// change. The session itself is untouched on failure.
func (p *Provider) RefreshUser(ctx context.Context) {
	user, err := p.gw.CurrentUser(ctx)
	if err != nil {
		slog.Warn("refresh user", "err", err)
		return
	}
	p.mu.Lock()
	p.user = user
	p.mu.Unlock()
	p.notifyChange()
}

// CurrentUser returns the authenticated account, or nil.
func (p *Provider) CurrentUser() *model.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

// IsLoading reports whether the startup revalidation is still in flight.
func (p *Provider) IsLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Token returns the session token, or "".
func (p *Provider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

func (p *Provider) issue() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	return p.seq
}

func (p *Provider) notifyChange() {
	if p.OnChange != nil {
		p.OnChange()
	}
}

func (p *Provider) notify(success bool, message string) {
	if p.OnNotice != nil {
		p.OnNotice(success, message)
	}
}
