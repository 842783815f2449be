package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crucial707/todo-api/internal/models"
	"github.com/crucial707/todo-api/internal/repo"
)

type memTasks struct {
	mu     sync.Mutex
	nextID int
	tasks  map[int]models.Task
}

func newMemTasks() *memTasks {
	return &memTasks{tasks: map[int]models.Task{}}
}

func (m *memTasks) Create(_ context.Context, ownerID int, title, description string) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	now := time.Now()
	t := models.Task{ID: m.nextID, Title: title, Description: description, Status: models.StatusPending, OwnerID: ownerID, CreatedAt: now, UpdatedAt: now}
	m.tasks[t.ID] = t
	return &t, nil
}

func (m *memTasks) GetOwned(_ context.Context, id, ownerID int) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repo.ErrNotFound
	}
	return &t, nil
}

func (m *memTasks) ListOwned(_ context.Context, ownerID int, status string) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Task
	for _, t := range m.tasks {
		if t.OwnerID == ownerID && (status == "" || t.Status == status) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memTasks) UpdateOwned(_ context.Context, id, ownerID int, title, description, status *string) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repo.ErrNotFound
	}
	if title != nil {
		t.Title = *title
	}
	if description != nil {
		t.Description = *description
	}
	if status != nil {
		t.Status = *status
	}
	t.UpdatedAt = time.Now()
	m.tasks[id] = t
	return &t, nil
}

func (m *memTasks) DeleteOwned(_ context.Context, id, ownerID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return repo.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

type memUsers struct {
	mu     sync.Mutex
	nextID int
	users  map[int]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[int]models.User{}}
}

func (m *memUsers) emailTaken(email string, except int) bool {
	for _, u := range m.users {
		if u.Email == email && u.ID != except {
			return true
		}
	}
	return false
}

func (m *memUsers) Create(_ context.Context, name, email, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(email, 0) {
		return nil, repo.ErrEmailTaken
	}
	m.nextID++
	u := models.User{ID: m.nextID, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	m.users[u.ID] = u
	out := u
	out.PasswordHash = ""
	return &out, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) Update(_ context.Context, id int, name, email, passwordHash *string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if email != nil && m.emailTaken(*email, id) {
		return nil, repo.ErrEmailTaken
	}
	if name != nil {
		u.Name = *name
	}
	if email != nil {
		u.Email = *email
	}
	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	m.users[id] = u
	out := u
	out.PasswordHash = ""
	return &out, nil
}

func (m *memUsers) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUsers) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		u.PasswordHash = ""
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memEvents struct {
	mu      sync.Mutex
	entries []string
}

func (m *memEvents) Log(_ context.Context, level, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, level+": "+message)
	return nil
}
