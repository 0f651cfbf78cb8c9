package service

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"projecthub/internal/model"
)

// Common test errors
var (
	ErrMockStore   = errors.New("mock store error")
	ErrMockPublish = errors.New("mock publish error")
)

// MockUserStore implements UserStore over an in-memory map.
type MockUserStore struct {
	mu    sync.Mutex
	Users map[primitive.ObjectID]*model.User

	InsertFunc         func(ctx context.Context, u *model.User) error
	UsernameExistsFunc func(ctx context.Context, username string) (bool, error)
}

func NewMockUserStore() *MockUserStore {
	return &MockUserStore{Users: make(map[primitive.ObjectID]*model.User)}
}

func (m *MockUserStore) Insert(ctx context.Context, u *model.User) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = primitive.NewObjectID()
	clone := *u
	m.Users[u.ID] = &clone
	return nil
}

func (m *MockUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *u
	return &clone, nil
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *MockUserStore) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []model.User
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if u, ok := m.Users[oid]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (m *MockUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	if m.UsernameExistsFunc != nil {
		return m.UsernameExistsFunc(ctx, username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, username, university, phoneNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.Username = username
	u.University = university
	u.PhoneNumber = phoneNumber
	u.ProfileComplete = true
	return nil
}

// MockProjectStore implements ProjectStore over an in-memory map.
type MockProjectStore struct {
	mu       sync.Mutex
	Projects map[primitive.ObjectID]*model.Project

	InsertFunc    func(ctx context.Context, p *model.Project) error
	AddMemberFunc func(ctx context.Context, projectID primitive.ObjectID, userID string) error
}

func NewMockProjectStore() *MockProjectStore {
	return &MockProjectStore{Projects: make(map[primitive.ObjectID]*model.Project)}
}

func (m *MockProjectStore) Insert(ctx context.Context, p *model.Project) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	clone := *p
	clone.Members = append([]string(nil), p.Members...)
	m.Projects[p.ID] = &clone
	return nil
}

func (m *MockProjectStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Projects[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *p
	clone.Members = append([]string(nil), p.Members...)
	return &clone, nil
}

func (m *MockProjectStore) FindByInviteCode(ctx context.Context, code string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Projects {
		if p.InviteCode == code {
			clone := *p
			clone.Members = append([]string(nil), p.Members...)
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *MockProjectStore) ListByMember(ctx context.Context, userID string) ([]model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var projects []model.Project
	for _, p := range m.Projects {
		if p.HasMember(userID) {
			projects = append(projects, *p)
		}
	}
	return projects, nil
}

// AddMember mirrors the $addToSet write: duplicates are a silent no-op.
func (m *MockProjectStore) AddMember(ctx context.Context, projectID primitive.ObjectID, userID string) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, projectID, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Projects[projectID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if !p.HasMember(userID) {
		p.Members = append(p.Members, userID)
	}
	return nil
}

// MockTaskStore implements TaskStore over an in-memory map.
type MockTaskStore struct {
	mu    sync.Mutex
	Tasks map[primitive.ObjectID]*model.Task

	UpdateStatusFunc func(ctx context.Context, id primitive.ObjectID, status string) error
}

func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{Tasks: make(map[primitive.ObjectID]*model.Task)}
}

func (m *MockTaskStore) Insert(ctx context.Context, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = primitive.NewObjectID()
	clone := *t
	m.Tasks[t.ID] = &clone
	return nil
}

func (m *MockTaskStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tasks[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *t
	return &clone, nil
}

func (m *MockTaskStore) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []model.Task
	for _, t := range m.Tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
}

func (m *MockTaskStore) ListByAssignee(ctx context.Context, userID string) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []model.Task
	for _, t := range m.Tasks {
		if t.AssignedTo == userID {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
}

func (m *MockTaskStore) WatchByProject(ctx context.Context, projectID primitive.ObjectID) (<-chan []model.Task, func(), error) {
	tasks, _ := m.ListByProject(ctx, projectID)
	ch := make(chan []model.Task, 1)
	ch <- tasks
	return ch, func() { close(ch) }, nil
}

func (m *MockTaskStore) WatchByAssignee(ctx context.Context, userID string) (<-chan []model.Task, func(), error) {
	tasks, _ := m.ListByAssignee(ctx, userID)
	ch := make(chan []model.Task, 1)
	ch <- tasks
	return ch, func() { close(ch) }, nil
}

func (m *MockTaskStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tasks[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	t.Status = status
	return nil
}

func (m *MockTaskStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Tasks[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.Tasks, id)
	return nil
}

// MockMilestoneStore implements MilestoneStore over an in-memory map.
type MockMilestoneStore struct {
	mu         sync.Mutex
	Milestones map[primitive.ObjectID]*model.Milestone
}

func NewMockMilestoneStore() *MockMilestoneStore {
	return &MockMilestoneStore{Milestones: make(map[primitive.ObjectID]*model.Milestone)}
}

func (m *MockMilestoneStore) Insert(ctx context.Context, ms *model.Milestone) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms.ID = primitive.NewObjectID()
	clone := *ms
	m.Milestones[ms.ID] = &clone
	return nil
}

func (m *MockMilestoneStore) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Milestone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms, ok := m.Milestones[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	clone := *ms
	return &clone, nil
}

func (m *MockMilestoneStore) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]model.Milestone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var milestones []model.Milestone
	for _, ms := range m.Milestones {
		if ms.ProjectID == projectID {
			milestones = append(milestones, *ms)
		}
	}
	return milestones, nil
}

func (m *MockMilestoneStore) WatchByProject(ctx context.Context, projectID primitive.ObjectID) (<-chan []model.Milestone, func(), error) {
	milestones, _ := m.ListByProject(ctx, projectID)
	ch := make(chan []model.Milestone, 1)
	ch <- milestones
	return ch, func() { close(ch) }, nil
}

func (m *MockMilestoneStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Milestones[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.Milestones, id)
	return nil
}

// MockPendingInviteStore mirrors the Redis store: Consume is
// read-and-clear, a missing token yields "".
type MockPendingInviteStore struct {
	mu      sync.Mutex
	Pending map[string]string

	SaveFunc    func(ctx context.Context, token, code string) error
	ConsumeFunc func(ctx context.Context, token string) (string, error)
}

func NewMockPendingInviteStore() *MockPendingInviteStore {
	return &MockPendingInviteStore{Pending: make(map[string]string)}
}

func (m *MockPendingInviteStore) Save(ctx context.Context, token, code string) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, token, code)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pending[token] = code
	return nil
}

func (m *MockPendingInviteStore) Consume(ctx context.Context, token string) (string, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	code := m.Pending[token]
	delete(m.Pending, token)
	return code, nil
}

// PublishedEvent records one Publish call on the mock publisher.
type PublishedEvent struct {
	RoutingKey string
	Payload    any
}

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent

	PublishFunc func(routingKey string, payload any) error
}

func (m *MockPublisher) Publish(routingKey string, payload any) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(routingKey, payload)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{RoutingKey: routingKey, Payload: payload})
	return nil
}

// RoutingKeys returns the routing keys published so far, in order.
func (m *MockPublisher) RoutingKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		keys = append(keys, e.RoutingKey)
	}
	return keys
}
