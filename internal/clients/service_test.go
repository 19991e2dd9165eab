package clients

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbarak/nexagestion-sub003/internal/authz"
	"github.com/arbarak/nexagestion-sub003/internal/shared"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	clients map[int64]*Client
	nextID  int64

	getCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{clients: make(map[int64]*Client), nextID: 1}
}

func (m *mockRepository) Create(ctx context.Context, c Client) (int64, error) {
	for _, existing := range m.clients {
		if existing.GroupID == c.GroupID && existing.Code == c.Code {
			return 0, shared.ErrDuplicate
		}
	}
	c.ID = m.nextID
	m.nextID++
	m.clients[c.ID] = &c
	return c.ID, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Client, error) {
	m.getCalls++
	c, ok := m.clients[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context, req ListClientsRequest) ([]Client, error) {
	var out []Client
	for _, c := range m.clients {
		if c.GroupID != req.GroupID {
			continue
		}
		if req.IsActive != nil && c.IsActive != *req.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockRepository) Update(ctx context.Context, c Client) error {
	if _, ok := m.clients[c.ID]; !ok {
		return shared.ErrNotFound
	}
	m.clients[c.ID] = &c
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.clients[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.clients, id)
	return nil
}

type mockAuditor struct {
	logs []shared.AuditLog
}

func (m *mockAuditor) Record(ctx context.Context, log shared.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

// ============================================================================
// TESTS
// ============================================================================

var (
	ownerSess    = authz.Session{PrincipalID: 7, Role: authz.RoleManager, GroupID: 3, CompanyID: 12}
	intruderSess = authz.Session{PrincipalID: 8, Role: authz.RoleManager, GroupID: 4, CompanyID: 20}
)

func newTestService() (*Service, *mockRepository, *mockAuditor) {
	repo := newMockRepository()
	audit := &mockAuditor{}
	return NewService(repo, audit, nil), repo, audit
}

func seedClient(t *testing.T, svc *Service) *Client {
	t.Helper()
	c, err := svc.Create(context.Background(), ownerSess, CreateClientRequest{
		Code:      "CL-001",
		Name:      "Atlantic Fisheries",
		CompanyID: 12,
		Country:   "FR",
	})
	require.NoError(t, err)
	return c
}

func TestCreateStampsOwnership(t *testing.T) {
	svc, _, _ := newTestService()
	c := seedClient(t, svc)

	assert.Equal(t, ownerSess.GroupID, c.GroupID, "owner tenant comes from the session")
	assert.Equal(t, ownerSess.PrincipalID, c.CreatedBy)
	assert.True(t, c.IsActive)
}

func TestCreateDuplicateCode(t *testing.T) {
	svc, _, _ := newTestService()
	seedClient(t, svc)

	_, err := svc.Create(context.Background(), ownerSess, CreateClientRequest{
		Code: "CL-001", Name: "Other", CompanyID: 12, Country: "FR",
	})
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestGetEnforcesScopeAfterFetch(t *testing.T) {
	svc, _, audit := newTestService()
	c := seedClient(t, svc)

	got, err := svc.Get(context.Background(), ownerSess, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = svc.Get(context.Background(), intruderSess, c.ID)
	assert.ErrorIs(t, err, authz.ErrScopeDenied)

	require.NotEmpty(t, audit.logs)
	last := audit.logs[len(audit.logs)-1]
	assert.Equal(t, shared.AuditOutcomeScopeDenied, last.Outcome)
	assert.Equal(t, intruderSess.PrincipalID, last.ActorID)
}

func TestMissingRecordNeverReachesScope(t *testing.T) {
	svc, repo, audit := newTestService()

	// Even for a principal outside every tenant, a nonexistent record must
	// surface as not-found: scope is only evaluated once a record exists.
	_, err := svc.Get(context.Background(), intruderSess, 999)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NotErrorIs(t, err, authz.ErrScopeDenied)
	assert.Equal(t, 1, repo.getCalls)

	for _, log := range audit.logs {
		assert.NotEqual(t, shared.AuditOutcomeScopeDenied, log.Outcome)
	}
}

func TestUpdateCrossTenantDenied(t *testing.T) {
	svc, repo, _ := newTestService()
	c := seedClient(t, svc)

	name := "Renamed"
	_, err := svc.Update(context.Background(), intruderSess, c.ID, UpdateClientRequest{Name: &name})
	assert.ErrorIs(t, err, authz.ErrScopeDenied)

	// The record is untouched.
	stored, err := repo.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Atlantic Fisheries", stored.Name)
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	svc, _, _ := newTestService()
	c := seedClient(t, svc)

	name := "Atlantic Fisheries SA"
	inactive := false
	got, err := svc.Update(context.Background(), ownerSess, c.ID, UpdateClientRequest{
		Name: &name, IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.False(t, got.IsActive)
	assert.Equal(t, "FR", got.Country, "untouched fields survive")
	assert.Equal(t, ownerSess.GroupID, got.GroupID, "owner tenant is never reassigned")
}

func TestDeleteCrossTenantDenied(t *testing.T) {
	svc, repo, _ := newTestService()
	c := seedClient(t, svc)

	err := svc.Delete(context.Background(), intruderSess, c.ID)
	assert.ErrorIs(t, err, authz.ErrScopeDenied)
	_, err = repo.Get(context.Background(), c.ID)
	assert.NoError(t, err, "record still present")

	require.NoError(t, svc.Delete(context.Background(), ownerSess, c.ID))
	_, err = repo.Get(context.Background(), c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListIsTenantScopedAtQueryLevel(t *testing.T) {
	svc, _, _ := newTestService()
	seedClient(t, svc)

	// A second tenant's record.
	_, err := svc.Create(context.Background(), intruderSess, CreateClientRequest{
		Code: "CL-900", Name: "Baltic Trading", CompanyID: 20, Country: "DE",
	})
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), ownerSess, ListClientsRequest{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "CL-001", mine[0].Code)

	theirs, err := svc.List(context.Background(), intruderSess, ListClientsRequest{})
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, "CL-900", theirs[0].Code)
}
