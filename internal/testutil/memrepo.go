// Package testutil provides in-memory repositories that enforce the same
// uniqueness and upsert rules as the Postgres schema.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/studygo-backend/internal/models"
	"github.com/baharkarakas/studygo-backend/internal/repository"
)

type Store struct {
	mu       sync.Mutex
	users    map[string]models.User
	posts    map[string]models.Post
	progress map[string]models.Progress // key: userID + "\x00" + module
	clock    time.Time
}

func NewStore() *Store {
	return &Store{
		users:    map[string]models.User{},
		posts:    map[string]models.Post{},
		progress: map[string]models.Progress{},
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so ordering is deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *Store) Users() repository.Users       { return usersRepo{s} }
func (s *Store) Posts() repository.Posts       { return postsRepo{s} }
func (s *Store) Progress() repository.Progress { return progressRepo{s} }

// ProgressRows counts stored rows for one (user, module) pair.
func (s *Store) ProgressRows(userID, module string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.progress {
		if p.UserID == userID && p.Module == module {
			n++
		}
	}
	return n
}

type usersRepo struct{ s *Store }

func (r usersRepo) Create(_ context.Context, email, username, hash string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return models.User{}, &repository.ConflictError{Constraint: repository.ConstraintUserEmail}
		}
		if u.Username == username {
			return models.User{}, &repository.ConflictError{Constraint: repository.ConstraintUserUsername}
		}
	}
	now := r.s.tick()
	u := models.User{ID: uuid.NewString(), Email: email, Username: username, PasswordHash: hash, CreatedAt: now, UpdatedAt: now}
	r.s.users[u.ID] = u
	return u, nil
}

func (r usersRepo) GetByID(_ context.Context, id string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r usersRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r usersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r usersRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r usersRepo) UpdateProfile(_ context.Context, id string, p models.ProfileUpdate) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	p.Apply(&u)
	u.UpdatedAt = r.s.tick()
	r.s.users[id] = u
	return u, nil
}

type postsRepo struct{ s *Store }

func (r postsRepo) Create(_ context.Context, userID, content string) (models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return models.Post{}, repository.ErrNotFound
	}
	p := models.Post{ID: uuid.NewString(), UserID: userID, Content: content, CreatedAt: r.s.tick()}
	r.s.posts[p.ID] = p
	return p, nil
}

func (r postsRepo) GetByID(_ context.Context, id string) (models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return models.Post{}, repository.ErrNotFound
	}
	return p, nil
}

func (r postsRepo) ListRecent(_ context.Context, limit int) ([]models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r postsRepo) DeleteOwned(_ context.Context, id, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok || p.UserID != userID {
		return false, nil
	}
	delete(r.s.posts, id)
	return true, nil
}

type progressRepo struct{ s *Store }

func (r progressRepo) ListByUser(_ context.Context, userID string) ([]models.Progress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Progress{}
	for _, p := range r.s.progress {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r progressRepo) Upsert(_ context.Context, userID, module string, percent int) (models.Progress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := userID + "\x00" + module
	p, ok := r.s.progress[key]
	if !ok {
		p = models.Progress{ID: uuid.NewString(), UserID: userID, Module: module}
	}
	p.Percent = percent
	p.UpdatedAt = r.s.tick()
	r.s.progress[key] = p
	return p, nil
}
