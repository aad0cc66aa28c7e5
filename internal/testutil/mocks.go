package testutil

import (
	"time"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByAuth0ID map[string]*domain.User
	ByID      map[uuid.UUID]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByAuth0ID: make(map[string]*domain.User),
		ByID:      make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.ByAuth0ID[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name *string) (*domain.User, error) {
	if user, ok := m.ByAuth0ID[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:        uuid.New(),
		Auth0ID:   auth0ID,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.ByAuth0ID[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces map[int32]*domain.Workspace
	nextID     int32
	userRepo   *MockUserRepository
}

// NewMockWorkspaceRepository creates a new MockWorkspaceRepository
func NewMockWorkspaceRepository(userRepo *MockUserRepository) *MockWorkspaceRepository {
	return &MockWorkspaceRepository{
		Workspaces: make(map[int32]*domain.Workspace),
		nextID:     1,
		userRepo:   userRepo,
	}
}

// GetByID retrieves a workspace by ID
func (m *MockWorkspaceRepository) GetByID(id int32) (*domain.Workspace, error) {
	if ws, ok := m.Workspaces[id]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetByUserID retrieves a user's workspace
func (m *MockWorkspaceRepository) GetByUserID(userID uuid.UUID) (*domain.Workspace, error) {
	for _, ws := range m.Workspaces {
		if ws.UserID == userID {
			return ws, nil
		}
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetByUserAuth0ID retrieves a workspace by the owning user's Auth0 ID
func (m *MockWorkspaceRepository) GetByUserAuth0ID(auth0ID string) (*domain.Workspace, error) {
	if m.userRepo != nil {
		if user, ok := m.userRepo.ByAuth0ID[auth0ID]; ok {
			return m.GetByUserID(user.ID)
		}
	}
	return nil, domain.ErrWorkspaceNotFound
}

// Create creates a new workspace
func (m *MockWorkspaceRepository) Create(workspace *domain.Workspace) (*domain.Workspace, error) {
	workspace.ID = m.nextID
	m.nextID++
	workspace.CreatedAt = time.Now()
	workspace.UpdatedAt = time.Now()
	m.Workspaces[workspace.ID] = workspace
	return workspace, nil
}

// MockLiabilityRepository is a mock implementation of domain.LiabilityRepository
type MockLiabilityRepository struct {
	Liabilities map[uuid.UUID]*domain.Liability
	order       []uuid.UUID
}

// NewMockLiabilityRepository creates a new MockLiabilityRepository
func NewMockLiabilityRepository() *MockLiabilityRepository {
	return &MockLiabilityRepository{
		Liabilities: make(map[uuid.UUID]*domain.Liability),
	}
}

// AddLiability seeds a liability for tests, preserving insertion order
func (m *MockLiabilityRepository) AddLiability(liability *domain.Liability) {
	if liability.ID == uuid.Nil {
		liability.ID = uuid.New()
	}
	m.Liabilities[liability.ID] = liability
	m.order = append(m.order, liability.ID)
}

// Create creates a new liability
func (m *MockLiabilityRepository) Create(liability *domain.Liability) (*domain.Liability, error) {
	liability.ID = uuid.New()
	liability.CreatedAt = time.Now()
	liability.UpdatedAt = time.Now()
	m.Liabilities[liability.ID] = liability
	m.order = append(m.order, liability.ID)
	return liability, nil
}

// GetByID retrieves a liability by ID within a workspace
func (m *MockLiabilityRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.Liability, error) {
	if l, ok := m.Liabilities[id]; ok && l.WorkspaceID == workspaceID {
		return l, nil
	}
	return nil, domain.ErrLiabilityNotFound
}

// GetAllByWorkspace retrieves liabilities for a workspace in insertion order
func (m *MockLiabilityRepository) GetAllByWorkspace(workspaceID int32, includeArchived bool) ([]*domain.Liability, error) {
	var result []*domain.Liability
	for _, id := range m.order {
		l := m.Liabilities[id]
		if l.WorkspaceID != workspaceID {
			continue
		}
		if l.IsArchived && !includeArchived {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}

// Update updates a liability
func (m *MockLiabilityRepository) Update(liability *domain.Liability) (*domain.Liability, error) {
	if _, ok := m.Liabilities[liability.ID]; !ok {
		return nil, domain.ErrLiabilityNotFound
	}
	liability.UpdatedAt = time.Now()
	m.Liabilities[liability.ID] = liability
	return liability, nil
}

// Archive marks a liability as archived
func (m *MockLiabilityRepository) Archive(workspaceID int32, id uuid.UUID, archivedAt time.Time) (*domain.Liability, error) {
	l, ok := m.Liabilities[id]
	if !ok || l.WorkspaceID != workspaceID {
		return nil, domain.ErrLiabilityNotFound
	}
	l.IsArchived = true
	l.ArchivedAt = &archivedAt
	l.UpdatedAt = time.Now()
	return l, nil
}

// Delete removes a liability
func (m *MockLiabilityRepository) Delete(workspaceID int32, id uuid.UUID) error {
	l, ok := m.Liabilities[id]
	if !ok || l.WorkspaceID != workspaceID {
		return domain.ErrLiabilityNotFound
	}
	delete(m.Liabilities, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// MockDebtPaymentRepository is a mock implementation of domain.DebtPaymentRepository
type MockDebtPaymentRepository struct {
	Payments []*domain.DebtPayment
}

// NewMockDebtPaymentRepository creates a new MockDebtPaymentRepository
func NewMockDebtPaymentRepository() *MockDebtPaymentRepository {
	return &MockDebtPaymentRepository{}
}

// AddPayment seeds a payment for tests
func (m *MockDebtPaymentRepository) AddPayment(payment *domain.DebtPayment) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	m.Payments = append(m.Payments, payment)
}

// Create records a new payment
func (m *MockDebtPaymentRepository) Create(payment *domain.DebtPayment) (*domain.DebtPayment, error) {
	payment.ID = uuid.New()
	payment.CreatedAt = time.Now()
	m.Payments = append(m.Payments, payment)
	return payment, nil
}

// GetByLiabilityID retrieves all payments recorded against a liability
func (m *MockDebtPaymentRepository) GetByLiabilityID(liabilityID uuid.UUID) ([]*domain.DebtPayment, error) {
	var result []*domain.DebtPayment
	for _, p := range m.Payments {
		if p.LiabilityID == liabilityID {
			result = append(result, p)
		}
	}
	return result, nil
}

// MockPlanCache is an in-memory implementation of service.PlanCache
type MockPlanCache struct {
	Plans map[string]*domain.DebtPaymentPlan
	Hits  int
	Sets  int
}

// NewMockPlanCache creates a new MockPlanCache
func NewMockPlanCache() *MockPlanCache {
	return &MockPlanCache{Plans: make(map[string]*domain.DebtPaymentPlan)}
}

// GetPlan returns the cached plan for a key, if present
func (m *MockPlanCache) GetPlan(key string) (*domain.DebtPaymentPlan, bool) {
	plan, ok := m.Plans[key]
	if ok {
		m.Hits++
	}
	return plan, ok
}

// SetPlan caches a plan under a key
func (m *MockPlanCache) SetPlan(key string, plan *domain.DebtPaymentPlan) error {
	m.Plans[key] = plan
	m.Sets++
	return nil
}
