// Package memory provides an in-memory implementation of the user repository.
// It is intended for development and testing, where no Postgres is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"
)

// userRepository is an in-memory implementation of repository.UserRepository.
// IDs are assigned monotonically starting at 1, and the email uniqueness
// check happens under the same lock as the insert, so the create-time race
// the service-level check leaves open cannot occur here.
type userRepository struct {
	mu sync.RWMutex

	users   []*entity.User
	byEmail map[string]*entity.User
	nextID  int64
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byEmail: make(map[string]*entity.User),
		nextID:  1,
	}
}

// FindAll returns every stored user in insertion order.
func (repo *userRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	users := make([]*entity.User, 0, len(repo.users))
	for _, user := range repo.users {
		users = append(users, cloneUser(user))
	}

	return users, nil
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, user := range repo.users {
		if user.ID == id {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

// Create stores a new user and assigns its ID.
func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.byEmail[user.Email]; ok {
		return repository.ErrEmailTaken
	}

	now := time.Now()
	user.ID = repo.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	repo.nextID++

	stored := cloneUser(user)
	repo.users = append(repo.users, stored)
	repo.byEmail[stored.Email] = stored

	return nil
}

// cloneUser copies the record so callers cannot mutate stored state.
func cloneUser(user *entity.User) *entity.User {
	cloned := *user

	return &cloned
}
