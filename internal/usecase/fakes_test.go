package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"identity-service/internal/data/entity"
	"identity-service/internal/data/repository"
	"identity-service/internal/identity"
)

type memProfileRepo struct {
	mu        sync.Mutex
	rows      map[string]*entity.Profile
	inserts   int
	failures  int   // fail this many inserts before letting one through
	insertErr error // when set, every insert fails with this
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{rows: map[string]*entity.Profile{}}
}

func (r *memProfileRepo) Insert(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.inserts++
	if r.insertErr != nil {
		return r.insertErr
	}
	if r.inserts <= r.failures {
		return fmt.Errorf("store rejected insert on attempt %d", r.inserts)
	}
	if _, ok := r.rows[profile.IdentityID]; ok {
		return fmt.Errorf("insert profile %s: %w", profile.IdentityID, repository.ErrProfileExists)
	}

	copied := *profile
	r.rows[profile.IdentityID] = &copied
	return nil
}

func (r *memProfileRepo) FindByIdentityID(ctx context.Context, identityID string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[identityID], nil
}

func (r *memProfileRepo) FindByUsername(ctx context.Context, username string) ([]*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []*entity.Profile
	for _, p := range r.rows {
		if p.Username == username {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

type providerCreateCall struct {
	email    string
	secret   string
	metadata identity.Metadata
}

type fakeProvider struct {
	mu          sync.Mutex
	nextID      string
	createErr   error
	authErr     error
	deleteErr   error
	recoverErr  error
	createCalls []providerCreateCall
	authCalls   []identity.Credential
	deleteCalls []string
	deleted     map[string]bool
}

func newFakeProvider(nextID string) *fakeProvider {
	return &fakeProvider{nextID: nextID, deleted: map[string]bool{}}
}

func (p *fakeProvider) CreateIdentity(ctx context.Context, email, secret string, metadata identity.Metadata) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.createCalls = append(p.createCalls, providerCreateCall{email: email, secret: secret, metadata: metadata})
	if p.createErr != nil {
		return "", p.createErr
	}
	return p.nextID, nil
}

func (p *fakeProvider) Authenticate(ctx context.Context, credential identity.Credential, secret string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.authCalls = append(p.authCalls, credential)
	if p.authErr != nil {
		return "", p.authErr
	}
	return p.nextID, nil
}

func (p *fakeProvider) DeleteIdentity(ctx context.Context, identityID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.deleteCalls = append(p.deleteCalls, identityID)
	if p.deleteErr != nil {
		return p.deleteErr
	}
	p.deleted[identityID] = true
	return nil
}

func (p *fakeProvider) SendPasswordReset(ctx context.Context, email string) error {
	return p.recoverErr
}

type memSessionRepo struct {
	mu        sync.Mutex
	sessions  map[string]*entity.Session
	createErr error
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*entity.Session{}}
}

func (r *memSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	copied := *session
	r.sessions[session.Token.String()] = &copied
	return nil
}

func (r *memSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil || time.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	return s, nil
}

func (r *memSessionRepo) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil {
		return errors.New("session not found or already revoked")
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

// instantPolicy keeps the writer's retry shape but records requested delays
// instead of sleeping.
func instantPolicy(delays *[]time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		Backoff:     LinearBackoff(time.Second),
		Sleep: func(ctx context.Context, d time.Duration) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			*delays = append(*delays, d)
			return nil
		},
	}
}
