package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	uservo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/services/markdown"
)

type mockTicketRepository struct {
	CreateFunc             func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc            func(ctx context.Context, id string) (*ticket.Ticket, error)
	UpdateFunc             func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc             func(ctx context.Context, id string) error
	ListFunc               func(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error)
	SaveDecisionFunc       func(ctx context.Context, t *ticket.Ticket) (bool, error)
	ReplaceServiceTagsFunc func(ctx context.Context, ticketID string, tagIDs []string) error
	AttachServiceTagFunc   func(ctx context.Context, ticketID, tagID string) error
	DetachServiceTagFunc   func(ctx context.Context, ticketID, tagID string) error
	CountByAssigneeFunc    func(ctx context.Context, userID string) (int64, error)
	CountByClientFunc      func(ctx context.Context, clientID string) (int64, error)
	CountByServiceTagFunc  func(ctx context.Context, tagID string) (int64, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) SaveDecision(ctx context.Context, t *ticket.Ticket) (bool, error) {
	if m.SaveDecisionFunc != nil {
		return m.SaveDecisionFunc(ctx, t)
	}
	return true, nil
}

func (m *mockTicketRepository) ReplaceServiceTags(ctx context.Context, ticketID string, tagIDs []string) error {
	if m.ReplaceServiceTagsFunc != nil {
		return m.ReplaceServiceTagsFunc(ctx, ticketID, tagIDs)
	}
	return nil
}

func (m *mockTicketRepository) AttachServiceTag(ctx context.Context, ticketID, tagID string) error {
	if m.AttachServiceTagFunc != nil {
		return m.AttachServiceTagFunc(ctx, ticketID, tagID)
	}
	return nil
}

func (m *mockTicketRepository) DetachServiceTag(ctx context.Context, ticketID, tagID string) error {
	if m.DetachServiceTagFunc != nil {
		return m.DetachServiceTagFunc(ctx, ticketID, tagID)
	}
	return nil
}

func (m *mockTicketRepository) CountByAssignee(ctx context.Context, userID string) (int64, error) {
	if m.CountByAssigneeFunc != nil {
		return m.CountByAssigneeFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockTicketRepository) CountByClient(ctx context.Context, clientID string) (int64, error) {
	if m.CountByClientFunc != nil {
		return m.CountByClientFunc(ctx, clientID)
	}
	return 0, nil
}

func (m *mockTicketRepository) CountByServiceTag(ctx context.Context, tagID string) (int64, error) {
	if m.CountByServiceTagFunc != nil {
		return m.CountByServiceTagFunc(ctx, tagID)
	}
	return 0, nil
}

// mockUpdateRepository records every history entry it receives.
type mockUpdateRepository struct {
	mu         sync.Mutex
	created    []*ticket.Update
	CreateFunc func(ctx context.Context, u *ticket.Update) error
	ListFunc   func(ctx context.Context, ticketID string) ([]*ticket.Update, error)
}

func (m *mockUpdateRepository) Create(ctx context.Context, u *ticket.Update) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, u); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.created = append(m.created, u)
	m.mu.Unlock()
	return nil
}

func (m *mockUpdateRepository) ListByTicket(ctx context.Context, ticketID string) ([]*ticket.Update, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockUpdateRepository) kinds() []vo.UpdateKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]vo.UpdateKind, 0, len(m.created))
	for _, u := range m.created {
		out = append(out, u.Kind())
	}
	return out
}

type mockCommentRepository struct {
	CreateFunc       func(ctx context.Context, c *ticket.Comment) error
	GetByIDFunc      func(ctx context.Context, id string) (*ticket.Comment, error)
	ListByTicketFunc func(ctx context.Context, ticketID string) ([]*ticket.Comment, error)
	SoftDeleteFunc   func(ctx context.Context, c *ticket.Comment) error
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id string) (*ticket.Comment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID string) ([]*ticket.Comment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockCommentRepository) SoftDelete(ctx context.Context, c *ticket.Comment) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, c)
	}
	return nil
}

// memClientRepository keeps clients in memory so intake tests can observe creates.
type memClientRepository struct {
	mu      sync.Mutex
	clients map[string]*client.Client
	creates int
}

func newMemClientRepository(existing ...*client.Client) *memClientRepository {
	r := &memClientRepository{clients: make(map[string]*client.Client)}
	for _, c := range existing {
		r.clients[c.ID()] = c
	}
	return r
}

func (r *memClientRepository) Create(_ context.Context, c *client.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID()] = c
	r.creates++
	return nil
}

func (r *memClientRepository) GetByID(_ context.Context, id string) (*client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients[id], nil
}

func (r *memClientRepository) GetByCompanyName(_ context.Context, name string) (*client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.CompanyName() == name {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memClientRepository) Update(_ context.Context, c *client.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID()] = c
	return nil
}

func (r *memClientRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
	return nil
}

func (r *memClientRepository) List(_ context.Context, _ client.ListFilter) ([]*client.Client, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*client.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *memClientRepository) GetByIDs(_ context.Context, ids []string) ([]*client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*client.Client
	for _, id := range ids {
		if c, ok := r.clients[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type memTagRepository struct {
	mu      sync.Mutex
	tags    map[string]*servicetag.ServiceTag
	creates int
}

func newMemTagRepository(existing ...*servicetag.ServiceTag) *memTagRepository {
	r := &memTagRepository{tags: make(map[string]*servicetag.ServiceTag)}
	for _, t := range existing {
		r.tags[t.ID()] = t
	}
	return r
}

func (r *memTagRepository) Create(_ context.Context, s *servicetag.ServiceTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[s.ID()] = s
	r.creates++
	return nil
}

func (r *memTagRepository) GetByID(_ context.Context, id string) (*servicetag.ServiceTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tags[id], nil
}

func (r *memTagRepository) GetByClientAndTag(_ context.Context, clientID, tag string) (*servicetag.ServiceTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tags {
		if t.ClientID() == clientID && t.Tag() == tag {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memTagRepository) GetByIDs(_ context.Context, ids []string) ([]*servicetag.ServiceTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*servicetag.ServiceTag
	for _, id := range ids {
		if t, ok := r.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTagRepository) Update(_ context.Context, s *servicetag.ServiceTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[s.ID()] = s
	return nil
}

func (r *memTagRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tags, id)
	return nil
}

func (r *memTagRepository) List(_ context.Context, _ servicetag.ListFilter) ([]*servicetag.ServiceTag, int64, error) {
	return nil, 0, nil
}

func (r *memTagRepository) CountByClient(_ context.Context, clientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.tags {
		if t.ClientID() == clientID {
			n++
		}
	}
	return n, nil
}

type mockUserRepository struct {
	users map[string]*user.User
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	r := &mockUserRepository{users: make(map[string]*user.User)}
	for _, u := range users {
		r.users[u.ID()] = u
	}
	return r
}

func (r *mockUserRepository) Create(_ context.Context, u *user.User) error {
	r.users[u.ID()] = u
	return nil
}

func (r *mockUserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	return r.users[id], nil
}

func (r *mockUserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepository) GetByIDs(_ context.Context, ids []string) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *mockUserRepository) Update(_ context.Context, u *user.User) error {
	r.users[u.ID()] = u
	return nil
}

func (r *mockUserRepository) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *mockUserRepository) List(_ context.Context, _ user.ListFilter) ([]*user.User, int64, error) {
	return nil, 0, nil
}

func (r *mockUserRepository) CountByClient(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

type sequenceIDGenerator struct {
	mu   sync.Mutex
	next int64
}

func (g *sequenceIDGenerator) Next(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("TK-%06d", g.next), nil
}

// mockTransactor runs the function inline; a failing function is reported as rolled back.
type mockTransactor struct {
	calls      int
	rolledBack int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(ctx); err != nil {
		m.rolledBack++
		return err
	}
	return nil
}

type mockStorage struct {
	mu         sync.Mutex
	uploaded   []string
	deleted    []string
	UploadFunc func(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

func (m *mockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if m.UploadFunc != nil {
		url, err := m.UploadFunc(ctx, key, data, contentType)
		if err != nil {
			return "", err
		}
		m.mu.Lock()
		m.uploaded = append(m.uploaded, key)
		m.mu.Unlock()
		return url, nil
	}
	m.mu.Lock()
	m.uploaded = append(m.uploaded, key)
	m.mu.Unlock()
	return "https://files.example.com/" + key, nil
}

func (m *mockStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	return nil
}

func newTestAssembler(clients client.Repository, users user.Repository, tags servicetag.Repository) *Assembler {
	return NewAssembler(clients, users, tags, markdown.NewRenderer(), logger.NewNop())
}

func strPtr(s string) *string {
	return &s
}

func principal(role permission.Role, userID string) *permission.Principal {
	return &permission.Principal{UserID: userID, Name: "User " + userID, Role: role}
}

func clientPrincipal(userID, clientID string) *permission.Principal {
	p := principal(permission.RoleClient, userID)
	p.ClientID = strPtr(clientID)
	return p
}

func newTestClient(id, company string) *client.Client {
	c, err := client.ReconstructClient(id, "Jane Doe", company, "jane@example.com", "555-0100", "", biztime.NowUTC(), biztime.NowUTC())
	if err != nil {
		panic(err)
	}
	return c
}

func newTestTag(id, clientID, tag string) *servicetag.ServiceTag {
	t, err := servicetag.ReconstructServiceTag(id, clientID, tag, "", "Printer", "Office", biztime.NowUTC(), biztime.NowUTC())
	if err != nil {
		panic(err)
	}
	return t
}

func newTestUser(id string, role permission.Role, disabled bool) *user.User {
	email, err := uservo.NewEmail(id + "@example.com")
	if err != nil {
		panic(err)
	}
	var clientID *string
	if role == permission.RoleClient {
		clientID = strPtr("client-1")
	}
	u, err := user.ReconstructUser(id, email, "Name "+id, role, clientID, disabled, biztime.NowUTC(), biztime.NowUTC())
	if err != nil {
		panic(err)
	}
	return u
}

func newTestTicket(id string, status vo.TicketStatus, clientID string) *ticket.Ticket {
	now := biztime.NowUTC()
	t, err := ticket.ReconstructTicket(ticket.Snapshot{
		ID:          id,
		Title:       "Printer down",
		Description: "The office printer shows error 42",
		Status:      status,
		Priority:    vo.PriorityMedium,
		Source:      vo.SourceWeb,
		ClientID:    clientID,
		ReporterID:  strPtr("reporter-1"),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		panic(err)
	}
	return t
}
