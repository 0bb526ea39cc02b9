package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"arenax-backend/internal/common/logger"
	"arenax-backend/internal/features/session/models"
	"arenax-backend/internal/features/session/repository"
	"arenax-backend/internal/features/session/store"
	"arenax-backend/internal/platform/provider"
)

type eventKind int

const (
	eventSignedIn eventKind = iota
	eventTokenRefreshed
	eventSignedOut
)

type event struct {
	kind  eventKind
	token *provider.Token
}

// Session is one client's authenticated context: a store publishing
// snapshots, a single-consumer event queue applying auth-state transitions
// in delivery order, and the credential operations. State updates are
// last-write-wins; the store, not an operation's return value, is the
// source of truth for "am I logged in now".
type Session struct {
	id            string
	store         *store.Store
	authn         Authenticator
	resolver      *ProfileResolver
	profiles      repository.ProfileRepository
	tokens        TokenStore
	refreshLeeway time.Duration

	events chan event
	done   chan struct{}
	closed sync.Once

	bootstrapOnce sync.Once

	// applyMu serializes state transitions so every mutation is an atomic
	// whole-record replacement regardless of which path triggered it.
	applyMu sync.Mutex
	current *provider.Token

	timerMu sync.Mutex
	refresh *time.Timer
}

// Deps bundles the collaborators a Session needs.
type Deps struct {
	Authenticator Authenticator
	Profiles      repository.ProfileRepository
	Tokens        TokenStore
	RefreshLeeway time.Duration
}

func NewSession(id string, deps Deps) *Session {
	s := &Session{
		id:            id,
		store:         store.New(),
		authn:         deps.Authenticator,
		resolver:      NewProfileResolver(deps.Profiles),
		profiles:      deps.Profiles,
		tokens:        deps.Tokens,
		refreshLeeway: deps.RefreshLeeway,
		events:        make(chan event, 16),
		done:          make(chan struct{}),
		refresh:       time.NewTimer(time.Hour),
	}
	s.refresh.Stop()
	go s.run()
	return s
}

func (s *Session) ID() string { return s.id }

// Snapshot returns the current published session state.
func (s *Session) Snapshot() models.Snapshot { return s.store.Snapshot() }

// AccessToken returns the current provider access token, or "" when
// anonymous. Feature services use it to scope data-API calls to the user.
func (s *Session) AccessToken() string {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.AccessToken
}

// Close releases the subscriber goroutine and refresh timer.
func (s *Session) Close() {
	s.closed.Do(func() {
		close(s.done)
		s.timerMu.Lock()
		s.refresh.Stop()
		s.timerMu.Unlock()
	})
}

// Bootstrap restores any persisted session. It runs exactly once per
// Session; re-attachments are no-ops. The loading flag clears on the first
// publish and never re-enters.
func (s *Session) Bootstrap(ctx context.Context) {
	s.bootstrapOnce.Do(func() {
		s.store.StartLoading()

		rec, err := s.tokens.Load(ctx, s.id)
		if err != nil {
			logger.Warn().Err(err).Str("session_id", s.id).Msg("Token record load failed, starting anonymous")
			s.store.Clear()
			return
		}
		if rec == nil {
			s.store.Clear()
			return
		}

		tok := &provider.Token{AccessToken: rec.AccessToken, RefreshToken: rec.RefreshToken}
		claims, err := provider.DecodeAccessToken(rec.AccessToken)
		if err != nil || claims.Expired() {
			refreshed, rerr := s.authn.RefreshToken(ctx, rec.RefreshToken)
			if rerr != nil {
				logger.Info().Err(rerr).Str("session_id", s.id).Msg("Stored session could not be refreshed")
				_ = s.tokens.Delete(ctx, s.id)
				s.store.Clear()
				return
			}
			tok = refreshed
		}

		s.apply(event{kind: eventSignedIn, token: tok})
	})
}

// Login exchanges credentials for a session. Provider errors pass through
// unchanged. On success the store is republished via the event queue.
func (s *Session) Login(ctx context.Context, email, password string) error {
	token, err := s.authn.SignInWithPassword(ctx, email, password)
	if err != nil {
		return err
	}
	s.publish(event{kind: eventSignedIn, token: token})
	return nil
}

// SignupInput carries the registration form.
type SignupInput struct {
	Username   string
	Email      string
	Password   string
	IGN        string
	FreeFireID string
}

// SignupResult distinguishes immediate sign-in from confirmation pending.
type SignupResult struct {
	ConfirmationPending bool   `json:"confirmation_pending"`
	Message             string `json:"message"`
}

// Signup registers an identity, then updates the trigger-created profile
// row with the gaming fields. A profile write failure after identity
// creation is reported as ErrProfileIncomplete, not a generic failure.
func (s *Session) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	res, err := s.authn.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	accessToken := ""
	if res.Token != nil {
		accessToken = res.Token.AccessToken
	}

	update := models.ProfileUpdate{
		Username:   &in.Username,
		IGN:        &in.IGN,
		FreeFireID: &in.FreeFireID,
	}
	if err := s.profiles.Update(ctx, accessToken, res.User.ID, update); err != nil {
		return nil, fmt.Errorf("%w: user %s: %v", ErrProfileIncomplete, res.User.ID, err)
	}

	if res.Token != nil {
		s.publish(event{kind: eventSignedIn, token: res.Token})
		return &SignupResult{Message: "Signup successful!"}, nil
	}
	return &SignupResult{
		ConfirmationPending: true,
		Message:             "Please check your email to confirm your account",
	}, nil
}

// Logout signs out at the provider and clears the store unconditionally;
// a user is never left logged in locally after requesting logout.
func (s *Session) Logout(ctx context.Context) error {
	if tok := s.currentToken(); tok != nil {
		if err := s.authn.SignOut(ctx, tok.AccessToken); err != nil {
			logger.Warn().Err(err).Str("session_id", s.id).Msg("Provider sign-out failed, clearing session anyway")
		}
	}
	s.apply(event{kind: eventSignedOut})
	return nil
}

// AdminLogin authenticates and additionally requires the admin role. A
// non-admin session is signed back out before the failure is reported, so
// a failed attempt never leaves an authenticated session behind.
func (s *Session) AdminLogin(ctx context.Context, email, password string) error {
	token, err := s.authn.SignInWithPassword(ctx, email, password)
	if err != nil {
		return err
	}

	identity := identityFromToken(token)
	profile, err := s.resolver.Resolve(ctx, token.AccessToken, identity)
	if err != nil {
		// Could not check the role; reverse the authentication.
		_ = s.authn.SignOut(ctx, token.AccessToken)
		s.apply(event{kind: eventSignedOut})
		return err
	}

	if profile.Role != models.RoleAdmin {
		if serr := s.authn.SignOut(ctx, token.AccessToken); serr != nil {
			logger.Warn().Err(serr).Str("user_id", identity.ID).Msg("Corrective sign-out failed")
		}
		s.apply(event{kind: eventSignedOut})
		return ErrInsufficientPrivilege
	}

	s.publish(event{kind: eventSignedIn, token: token})
	return nil
}

// UpdateProfile writes the editable fields and republishes the session
// without a state-class change or a re-bootstrap.
func (s *Session) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	snap := s.store.Snapshot()
	if !snap.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	tok := s.currentToken()
	if tok == nil {
		return ErrNotAuthenticated
	}

	if err := s.profiles.Update(ctx, tok.AccessToken, snap.Identity.ID, update); err != nil {
		return err
	}

	profile, err := s.resolver.Resolve(ctx, tok.AccessToken, *snap.Identity)
	if err != nil {
		return err
	}
	s.store.SetUser(*snap.Identity, profile)
	return nil
}

func (s *Session) publish(ev event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *Session) currentToken() *provider.Token {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	return s.current
}

// run is the single consumer of the event queue; events are applied in
// delivery order, the last resolved state always wins.
func (s *Session) run() {
	for {
		select {
		case <-s.done:
			return
		case ev := <-s.events:
			s.apply(ev)
		case <-s.refresh.C:
			s.refreshToken()
		}
	}
}

// apply performs one state transition. Serialized so every store mutation
// is a full-record replacement regardless of which path triggered it.
func (s *Session) apply(ev event) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch ev.kind {
	case eventSignedIn, eventTokenRefreshed:
		identity := identityFromToken(ev.token)
		if identity.ID == "" {
			logger.Error().Str("session_id", s.id).Msg("Token without identity, ignoring event")
			return
		}

		profile, err := s.resolver.Resolve(ctx, ev.token.AccessToken, identity)
		if err != nil {
			// Profile fetch failure degrades gracefully; it does not
			// revoke authentication.
			logger.Warn().Err(err).Str("user_id", identity.ID).Msg("Profile resolution failed, degrading")
			if prev := s.store.Snapshot(); prev.IsAuthenticated() && prev.Profile != nil && prev.Identity.ID == identity.ID {
				profile = *prev.Profile
			} else {
				profile = models.PlaceholderProfile(identity)
			}
		}

		s.current = ev.token
		if err := s.tokens.Save(ctx, TokenRecord{
			SessionID:    s.id,
			UserID:       identity.ID,
			AccessToken:  ev.token.AccessToken,
			RefreshToken: ev.token.RefreshToken,
			SavedAt:      time.Now(),
		}); err != nil {
			logger.Warn().Err(err).Str("session_id", s.id).Msg("Token record save failed")
		}

		s.store.SetUser(identity, profile)
		s.scheduleRefresh(ev.token.AccessToken)

	case eventSignedOut:
		s.current = nil
		if err := s.tokens.Delete(ctx, s.id); err != nil {
			logger.Warn().Err(err).Str("session_id", s.id).Msg("Token record delete failed")
		}
		s.store.Clear()
		s.stopRefresh()
	}
}

func (s *Session) refreshToken() {
	tok := s.currentToken()
	if tok == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	refreshed, err := s.authn.RefreshToken(ctx, tok.RefreshToken)
	if err != nil {
		if _, ok := provider.AsAPIError(err); ok {
			// Provider rejected the refresh token: session lost.
			logger.Info().Err(err).Str("session_id", s.id).Msg("Session lost on refresh")
			s.apply(event{kind: eventSignedOut})
			return
		}
		// Transport failure, try again shortly.
		s.resetRefresh(30 * time.Second)
		return
	}

	s.apply(event{kind: eventTokenRefreshed, token: refreshed})
}

func (s *Session) scheduleRefresh(accessToken string) {
	claims, err := provider.DecodeAccessToken(accessToken)
	if err != nil || claims.ExpiresAt.IsZero() {
		return
	}
	d := time.Until(claims.ExpiresAt) - s.refreshLeeway
	if d < time.Second {
		d = time.Second
	}
	s.resetRefresh(d)
}

func (s *Session) resetRefresh(d time.Duration) {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if !s.refresh.Stop() {
		select {
		case <-s.refresh.C:
		default:
		}
	}
	s.refresh.Reset(d)
}

func (s *Session) stopRefresh() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	s.refresh.Stop()
}

func identityFromToken(tok *provider.Token) models.Identity {
	identity := models.Identity{
		ID:        tok.User.ID,
		Email:     tok.User.Email,
		CreatedAt: tok.User.CreatedAt,
	}
	if identity.ID == "" {
		if claims, err := provider.DecodeAccessToken(tok.AccessToken); err == nil {
			identity.ID = claims.Subject
			identity.Email = claims.Email
		}
	}
	return identity
}
