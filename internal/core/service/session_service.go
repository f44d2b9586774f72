package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/api/metrics"
	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

// SessionService owns the authenticated-identity state for every console
// session. It is constructed once per process and injected everywhere a
// session is read or mutated; nothing else touches the token store.
//
// Mutations follow a single-writer discipline: every login/logout/profile
// call takes a sequence number on its session slot, and only the completion
// matching the latest initiated sequence is allowed to publish. A login that
// resolves after a newer login or logout began is discarded.
type SessionService struct {
	backend ports.RetentionBackend
	tokens  ports.TokenStore
	audit   ports.AuditRecorder
	logger  zerolog.Logger
	now     func() time.Time

	mu    sync.Mutex
	slots map[string]*sessionSlot
}

type sessionSlot struct {
	seq        uint64
	current    *domain.Session
	rehydrated bool
	subs       map[int]chan *domain.Session
	nextSub    int
}

func NewSessionService(backend ports.RetentionBackend, tokens ports.TokenStore, audit ports.AuditRecorder, logger zerolog.Logger) *SessionService {
	if audit == nil {
		audit = nopAudit{}
	}
	return &SessionService{
		backend: backend,
		tokens:  tokens,
		audit:   audit,
		logger:  logger,
		now:     time.Now,
		slots:   make(map[string]*sessionSlot),
	}
}

type nopAudit struct{}

func (nopAudit) Record(ports.AuditEvent) {}

// slot returns the state for sid, creating an empty one on first sight.
// Callers must hold s.mu.
func (s *SessionService) slot(sid string) *sessionSlot {
	sl, ok := s.slots[sid]
	if !ok {
		sl = &sessionSlot{subs: make(map[int]chan *domain.Session)}
		s.slots[sid] = sl
	}
	return sl
}

// ensureRehydrated restores sid's persisted session on first sight.
// Rehydration is fail-closed: an expired credential or one whose role or
// subject claims do not decode yields a logged-out slot. The token store read
// happens outside s.mu, so one slow lookup cannot stall every other session;
// a mutation that starts while the read is in flight wins over the stored
// value.
func (s *SessionService) ensureRehydrated(sid string) {
	s.mu.Lock()
	sl := s.slot(sid)
	if sl.rehydrated {
		s.mu.Unlock()
		return
	}
	seq := sl.seq
	s.mu.Unlock()

	sess := s.rehydrate(sid)

	s.mu.Lock()
	defer s.mu.Unlock()
	sl = s.slot(sid)
	if sl.rehydrated {
		return
	}
	sl.rehydrated = true
	if sess == nil || sl.current != nil || sl.seq != seq {
		return
	}
	sl.current = sess
	metrics.SessionsActive.Inc()
}

func (s *SessionService) rehydrate(sid string) *domain.Session {
	ctx := context.Background()
	token := s.tokens.Token(ctx, sid)
	if token == "" {
		return nil
	}
	cred := domain.Credential{Token: token}
	if cred.IsExpired(s.now()) {
		return nil
	}
	role := cred.Role()
	email := cred.Email()
	if !role.Known() || email == "" {
		return nil
	}
	s.logger.Debug().Str("sid", sid).Str("role", string(role)).Msg("session rehydrated")
	return &domain.Session{
		Email:      email,
		Role:       role,
		Name:       s.tokens.DisplayName(ctx, sid),
		UserID:     s.tokens.UserID(ctx, sid),
		Credential: cred,
		IssuedAt:   s.now(),
	}
}

// begin registers a new mutation on the session and returns its sequence.
func (s *SessionService) begin(sid string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.slot(sid)
	sl.seq++
	return sl.seq
}

// publish installs sess as the session's current value and notifies
// subscribers, unless a newer mutation has started since seq was taken.
func (s *SessionService) publish(sid string, seq uint64, sess *domain.Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl := s.slot(sid)
	if seq != sl.seq {
		return false
	}
	s.install(sl, sess)
	return true
}

// clearSession publishes a logged-out state and clears the persisted
// credential as one sequenced step. Clearing inside the same critical section
// means a stale logout can never delete the token a newer login just saved.
func (s *SessionService) clearSession(ctx context.Context, sid string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl := s.slot(sid)
	if seq != sl.seq {
		return false
	}
	s.tokens.Clear(ctx, sid)
	s.install(sl, nil)
	return true
}

// install sets sess as the slot's current value and notifies subscribers.
// Callers must hold s.mu.
func (s *SessionService) install(sl *sessionSlot, sess *domain.Session) {
	was, is := sl.current != nil, sess != nil
	sl.current = sess
	switch {
	case !was && is:
		metrics.SessionsActive.Inc()
	case was && !is:
		metrics.SessionsActive.Dec()
	}

	for _, ch := range sl.subs {
		sendLatest(ch, sess)
	}
}

// sendLatest delivers sess without blocking: a slow subscriber keeps only
// the newest value.
func sendLatest(ch chan *domain.Session, sess *domain.Session) {
	for {
		select {
		case ch <- sess:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Login authenticates against the backend. The credential is persisted
// first; role and identity are then derived from its claims, falling back to
// the response's plaintext role and user id when claim decoding yields
// nothing. If neither source produces a usable role and identity, no session
// is published and ErrIncompleteAuthResponse is returned.
func (s *SessionService) Login(ctx context.Context, sid, email, password string) (*domain.Session, error) {
	seq := s.begin(sid)

	resp, err := s.backend.Login(ctx, ports.LoginInput{Email: email, Password: password})
	if err != nil {
		s.recordLoginFailure(sid, email, err)
		return nil, err
	}

	s.tokens.SaveToken(ctx, sid, resp.Token)

	cred := domain.Credential{Token: resp.Token}
	role := cred.Role()
	if !role.Known() {
		role = domain.MapAPIRole(resp.Role)
	}
	subject := cred.Email()
	if subject == "" {
		subject = email
	}
	userID := resp.UserID

	if !role.Known() || (subject == "" && userID == 0) {
		metrics.LoginsTotal.WithLabelValues("incomplete_response").Inc()
		s.logger.Error().Str("sid", sid).Msg("login response carries no usable role or identity")
		return nil, domain.ErrIncompleteAuthResponse
	}

	if userID != 0 {
		s.tokens.SaveUserID(ctx, sid, userID)
	}

	sess := &domain.Session{
		Email:      subject,
		Role:       role,
		Name:       s.tokens.DisplayName(ctx, sid),
		UserID:     userID,
		Credential: cred,
		IssuedAt:   s.now(),
	}

	if !s.publish(sid, seq, sess) {
		s.logger.Warn().Str("sid", sid).Msg("stale login completion discarded")
		return nil, domain.ErrStaleCompletion
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.audit.Record(ports.AuditEvent{SessionID: sid, Actor: subject, Role: role, Action: ports.AuditLogin, At: s.now()})
	s.logger.Info().Str("sid", sid).Str("role", string(role)).Msg("session established")
	return sess, nil
}

func (s *SessionService) recordLoginFailure(sid, email string, err error) {
	result := "error"
	if errors.Is(err, domain.ErrInvalidCredentials) {
		result = "invalid_credentials"
	}
	metrics.LoginsTotal.WithLabelValues(result).Inc()
	s.audit.Record(ports.AuditEvent{SessionID: sid, Actor: email, Action: ports.AuditLoginFailed, At: s.now()})
}

// Register forwards an account registration to the backend. It never
// publishes a session; the new user still has to log in.
func (s *SessionService) Register(ctx context.Context, input ports.RegisterInput) error {
	if err := s.backend.Register(ctx, input); err != nil {
		return err
	}
	s.audit.Record(ports.AuditEvent{Actor: input.Email, Action: ports.AuditRegistered, At: s.now()})
	return nil
}

// Logout clears persisted and in-memory state for the session. Safe to call
// when already logged out.
func (s *SessionService) Logout(ctx context.Context, sid string) {
	actor, role := s.actor(sid)
	seq := s.begin(sid)

	if s.clearSession(ctx, sid, seq) && actor != "" {
		s.audit.Record(ports.AuditEvent{SessionID: sid, Actor: actor, Role: role, Action: ports.AuditLogout, At: s.now()})
	}
}

// Revoke force-clears a session whose credential the backend rejected.
// Invoked from the HTTP transport's 401 hook.
func (s *SessionService) Revoke(sid string) {
	actor, role := s.actor(sid)
	seq := s.begin(sid)

	if s.clearSession(context.Background(), sid, seq) {
		metrics.ForcedLogoutsTotal.Inc()
		s.audit.Record(ports.AuditEvent{SessionID: sid, Actor: actor, Role: role, Action: ports.AuditForcedLogout, At: s.now()})
	}
}

func (s *SessionService) actor(sid string) (string, domain.Role) {
	s.ensureRehydrated(sid)
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.slot(sid).current; sess != nil {
		return sess.Email, sess.Role
	}
	return "", domain.RoleUnknown
}

// Current returns the synchronous session snapshot, or nil when logged out.
// A published session whose credential has since expired reads as logged
// out; the slot is cleared on the spot so the stream stays consistent.
func (s *SessionService) Current(sid string) *domain.Session {
	s.ensureRehydrated(sid)

	s.mu.Lock()
	sess := s.slot(sid).current
	s.mu.Unlock()

	if sess == nil {
		return nil
	}
	if sess.Credential.IsExpired(s.now()) {
		seq := s.begin(sid)
		s.clearSession(context.Background(), sid, seq)
		return nil
	}
	return sess
}

// IsLoggedIn reports whether a session is published and its backing
// credential is still valid. The conjunction always holds: an expired
// credential is never reported as logged in.
func (s *SessionService) IsLoggedIn(sid string) bool {
	return s.Current(sid) != nil
}

// UpdateProfile applies a profile change through the backend and merges only
// the backend-confirmed fields into the session before republishing it. The
// display name is also persisted for rehydration.
func (s *SessionService) UpdateProfile(ctx context.Context, sid string, patch domain.ProfilePatch) (*domain.Session, error) {
	current := s.Current(sid)
	if current == nil {
		return nil, domain.ErrNotAuthenticated
	}

	seq := s.begin(sid)

	resp, err := s.backend.UpdateProfile(ctx, ports.ProfileUpdateInput{Name: patch.Name, Email: patch.Email})
	if err != nil {
		return nil, err
	}

	merged := *current
	if resp.Name != "" {
		merged.Name = resp.Name
	}
	if resp.Email != "" {
		merged.Email = resp.Email
	}

	if merged.Name != "" {
		s.tokens.SaveDisplayName(ctx, sid, merged.Name)
	}

	if !s.publish(sid, seq, &merged) {
		return nil, domain.ErrStaleCompletion
	}

	s.audit.Record(ports.AuditEvent{SessionID: sid, Actor: merged.Email, Role: merged.Role, Action: ports.AuditProfileUpdated, At: s.now()})
	return &merged, nil
}

// Watch subscribes to session updates for one console session. The current
// value is replayed immediately, so late subscribers never miss the state;
// multiple simultaneous subscribers share the cached value and trigger no
// backend calls. The stream never errors; cancel (or ctx) releases it.
func (s *SessionService) Watch(ctx context.Context, sid string) (<-chan *domain.Session, func()) {
	s.ensureRehydrated(sid)

	s.mu.Lock()
	sl := s.slot(sid)
	id := sl.nextSub
	sl.nextSub++
	ch := make(chan *domain.Session, 1)
	ch <- sl.current
	sl.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.slots[sid].subs, id)
			s.mu.Unlock()
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel
}

// RecordDenied writes an access-denied audit entry for a guard rejection.
func (s *SessionService) RecordDenied(sid, path string) {
	actor, role := s.actor(sid)
	s.audit.Record(ports.AuditEvent{SessionID: sid, Actor: actor, Role: role, Action: ports.AuditAccessDenied, Path: path, At: s.now()})
}
