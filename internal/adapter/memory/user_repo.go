package memory

import (
	"context"
	"time"

	"fittrack/internal/domain"
)

// UserRepo implements domain.UserRepository on the shared store.
type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.userIDCounter++
	now := time.Now()

	stored := *u
	stored.ID = r.db.userIDCounter
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.db.users[stored.ID] = &stored

	ret := stored
	return &ret, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	ret := *u
	return &ret, nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == username {
			ret := *u
			return &ret, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Email == email {
			ret := *u
			return &ret, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.User, 0, len(r.db.users))
	for _, id := range sortedIDs(r.db.users) {
		out = append(out, *r.db.users[id])
	}
	return window(out, skip, limit), nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.users[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *u
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.db.users[u.ID] = &updated
	return nil
}

// Delete removes the user and everything the user owns, mirroring the
// database's cascading foreign keys.
func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[id]; !ok {
		return false, nil
	}
	delete(r.db.users, id)

	for sid, s := range r.db.sessions {
		if s.UserID != id {
			continue
		}
		delete(r.db.sessions, sid)
		for lid, l := range r.db.logs {
			if l.SessionID == sid {
				delete(r.db.logs, lid)
			}
		}
	}
	for mid, m := range r.db.measurements {
		if m.UserID == id {
			delete(r.db.measurements, mid)
		}
	}
	for gid, g := range r.db.goals {
		if g.UserID == id {
			delete(r.db.goals, gid)
		}
	}
	return true, nil
}
