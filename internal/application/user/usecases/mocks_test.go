package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

const (
	adminID      = "0b8e3a4c-1111-4a5b-8c9d-000000000001"
	superID      = "0b8e3a4c-1111-4a5b-8c9d-000000000002"
	techID       = "0b8e3a4c-1111-4a5b-8c9d-000000000003"
	clientUserID = "0b8e3a4c-1111-4a5b-8c9d-000000000004"
	acmeClientID = "5f1d2c3b-2222-4e6f-9a0b-000000000001"
)

type memUserRepository struct {
	mu      sync.Mutex
	users   map[string]*domainUser.User
	lastErr error

	CreateFunc func(ctx context.Context, u *domainUser.User) error
	DeleteFunc func(ctx context.Context, id string) error
	ListFunc   func(ctx context.Context, filter domainUser.ListFilter) ([]*domainUser.User, int64, error)
}

func newMemUserRepository(users ...*domainUser.User) *memUserRepository {
	r := &memUserRepository{users: map[string]*domainUser.User{}}
	for _, u := range users {
		r.users[u.ID()] = u
	}
	return r
}

func (r *memUserRepository) Create(ctx context.Context, u *domainUser.User) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, u)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
	return nil
}

func (r *memUserRepository) GetByID(_ context.Context, id string) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], r.lastErr
}

func (r *memUserRepository) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, r.lastErr
}

func (r *memUserRepository) GetByIDs(_ context.Context, ids []string) ([]*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domainUser.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepository) Update(_ context.Context, u *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
	return nil
}

func (r *memUserRepository) Delete(ctx context.Context, id string) error {
	if r.DeleteFunc != nil {
		return r.DeleteFunc(ctx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memUserRepository) List(ctx context.Context, filter domainUser.ListFilter) ([]*domainUser.User, int64, error) {
	if r.ListFunc != nil {
		return r.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (r *memUserRepository) CountByClient(context.Context, string) (int64, error) {
	return 0, nil
}

func (r *memUserRepository) has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok
}

type mockIdentityProvider struct {
	nextID  string
	created []domainUser.NewIdentity
	updated []domainUser.IdentityChanges
	deleted []string

	CreateErr       error
	DeleteErr       error
	AuthenticateRes string
	AuthenticateErr error
}

func (m *mockIdentityProvider) CreateIdentity(_ context.Context, in domainUser.NewIdentity) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.created = append(m.created, in)
	return m.nextID, nil
}

func (m *mockIdentityProvider) UpdateIdentity(_ context.Context, _ string, changes domainUser.IdentityChanges) error {
	m.updated = append(m.updated, changes)
	return nil
}

func (m *mockIdentityProvider) DeleteIdentity(_ context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockIdentityProvider) Authenticate(context.Context, string, string) (string, error) {
	return m.AuthenticateRes, m.AuthenticateErr
}

type mockClientRepository struct {
	clients map[string]*client.Client
}

func (m *mockClientRepository) Create(context.Context, *client.Client) error { return nil }

func (m *mockClientRepository) GetByID(_ context.Context, id string) (*client.Client, error) {
	return m.clients[id], nil
}

func (m *mockClientRepository) GetByCompanyName(context.Context, string) (*client.Client, error) {
	return nil, nil
}

func (m *mockClientRepository) Update(context.Context, *client.Client) error { return nil }

func (m *mockClientRepository) Delete(context.Context, string) error { return nil }

func (m *mockClientRepository) List(context.Context, client.ListFilter) ([]*client.Client, int64, error) {
	return nil, 0, nil
}

func (m *mockClientRepository) GetByIDs(context.Context, []string) ([]*client.Client, error) {
	return nil, nil
}

type countFunc func(ctx context.Context, userID string) (int64, error)

func (f countFunc) CountByAssignee(ctx context.Context, userID string) (int64, error) {
	return f(ctx, userID)
}

type mockTokenIssuer struct {
	refreshSubject string
	refreshErr     error
}

func (m *mockTokenIssuer) Generate(userID string, role permission.Role) (*TokenPair, error) {
	return &TokenPair{
		AccessToken:  "access-" + userID,
		RefreshToken: "refresh-" + userID,
		ExpiresIn:    900,
	}, nil
}

func (m *mockTokenIssuer) ParseRefresh(string) (string, error) {
	return m.refreshSubject, m.refreshErr
}

// chanNotifier delivers notifications on a channel so tests can wait for the goroutine.
type chanNotifier struct {
	sent chan WelcomeNotification
	err  error
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{sent: make(chan WelcomeNotification, 1)}
}

func (n *chanNotifier) NotifyWelcome(_ context.Context, w WelcomeNotification) error {
	n.sent <- w
	return n.err
}

func principal(role permission.Role, id string) *permission.Principal {
	return &permission.Principal{UserID: id, Name: "User " + id, Role: role}
}

func newTestUser(id string, role permission.Role, disabled bool) *domainUser.User {
	email, err := vo.NewEmail(fmt.Sprintf("%s@example.com", role))
	if err != nil {
		panic(err)
	}
	var clientID *string
	if role.IsClient() {
		c := acmeClientID
		clientID = &c
	}
	now := biztime.NowUTC()
	u, err := domainUser.ReconstructUser(id, email, "Name "+id, role, clientID, disabled, now, now)
	if err != nil {
		panic(err)
	}
	return u
}

func newAcmeClient() *client.Client {
	now := biztime.NowUTC()
	c, err := client.ReconstructClient(acmeClientID, "Ann Acme", "Acme Co", "ops@acme.com", "", "", now, now)
	if err != nil {
		panic(err)
	}
	return c
}
