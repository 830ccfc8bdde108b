package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/query"
	"github.com/jhoicas/company-admin/internal/domain/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

// UserStore implementa repository.UserRepository en memoria.
type UserStore struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*entity.User
	seq     map[int64]int64 // orden de inserción, desempata created_at
	counter int64
	now     func() time.Time
	failErr error
}

// NewUserStore crea un almacén vacío.
func NewUserStore() *UserStore {
	return &UserStore{
		byID: make(map[int64]*entity.User),
		seq:  make(map[int64]int64),
		now:  time.Now,
	}
}

// FailWith hace que las siguientes operaciones fallen con err (nil restablece).
func (s *UserStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

func (s *UserStore) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	if s.emailTaken(u.Email, 0) {
		return domain.ErrEmailAlreadyExists
	}
	s.nextID++
	s.counter++
	now := s.now()
	u.ID = s.nextID
	u.CreatedAt, u.UpdatedAt = now, now

	s.byID[u.ID] = cloneUser(u)
	s.seq[u.ID] = s.counter
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id int64) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	for _, u := range s.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (s *UserStore) Update(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	cur, ok := s.byID[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if s.emailTaken(u.Email, u.ID) {
		return domain.ErrEmailAlreadyExists
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = s.now()
	s.byID[u.ID] = cloneUser(u)
	return nil
}

func (s *UserStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	if _, ok := s.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.byID, id)
	delete(s.seq, id)
	return nil
}

func (s *UserStore) DeleteMany(_ context.Context, ids []int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	deleted := []int64{}
	for _, id := range ids {
		if _, ok := s.byID[id]; ok {
			delete(s.byID, id)
			delete(s.seq, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

func (s *UserStore) List(_ context.Context, f query.UserFilter, page query.Page) ([]*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	return query.Slice(s.filter(f), page), nil
}

func (s *UserStore) Count(_ context.Context, f query.UserFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return 0, s.failErr
	}
	return int64(len(s.filter(f))), nil
}

func (s *UserStore) DistinctRoles(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	seen := map[string]bool{}
	roles := []string{}
	for _, u := range s.byID {
		if !seen[u.Role] {
			seen[u.Role] = true
			roles = append(roles, u.Role)
		}
	}
	sort.Strings(roles)
	return roles, nil
}

// filter devuelve copias ordenadas de más reciente a más antiguo.
func (s *UserStore) filter(f query.UserFilter) []*entity.User {
	out := []*entity.User{}
	for _, u := range s.byID {
		if f.Matches(u) {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return s.seq[out[i].ID] > s.seq[out[j].ID]
	})
	return out
}

func (s *UserStore) emailTaken(email string, exceptID int64) bool {
	for id, u := range s.byID {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func cloneUser(u *entity.User) *entity.User {
	clone := *u
	if u.Name != nil {
		name := *u.Name
		clone.Name = &name
	}
	return &clone
}
