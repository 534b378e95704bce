package memory

import (
	"context"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct{ v *view }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.users[u.ID]; ok {
			return domain.ErrDuplicate
		}
		if conflict(st, u) {
			return domain.ErrDuplicate
		}
		st.users[u.ID] = copyUser(u)
		st.userOrder = append(st.userOrder, u.ID)
		return nil
	})
}

// conflict username y employee_id son únicos entre usuarios distintos.
func conflict(st *state, u *entity.User) bool {
	for id, other := range st.users {
		if id == u.ID {
			continue
		}
		if other.Username == u.Username || other.EmployeeID == u.EmployeeID {
			return true
		}
	}
	return false
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		out = copyUser(st.users[id])
		return nil
	})
	return out, err
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *userRepo) GetByEmployeeID(_ context.Context, employeeID string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.EmployeeID == employeeID })
}

func (r *userRepo) find(pred func(*entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		for _, u := range st.users {
			if pred(u) {
				out = copyUser(u)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0)
	err := r.v.do(func(st *state) error {
		for _, id := range st.userOrder {
			out = append(out, copyUser(st.users[id]))
		}
		return nil
	})
	return out, err
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.users[u.ID]
		if !ok {
			return domain.ErrUserNotFound
		}
		if conflict(st, u) {
			return domain.ErrDuplicate
		}
		cur.Username = u.Username
		cur.EmployeeID = u.EmployeeID
		cur.RealName = u.RealName
		cur.Gender = u.Gender
		cur.Age = u.Age
		cur.UpdatedAt = u.UpdatedAt
		return nil
	})
}

func (r *userRepo) UpdatePassword(_ context.Context, id, hash string) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		cur.PasswordHash = hash
		return nil
	})
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return domain.ErrUserNotFound
		}
		if referenced(st, id) {
			return domain.ErrReferenced
		}
		delete(st.users, id)
		st.userOrder = removeID(st.userOrder, id)
		return nil
	})
}

func (r *userRepo) CountByRole(_ context.Context, role entity.Role) (int, error) {
	n := 0
	err := r.v.do(func(st *state) error {
		for _, u := range st.users {
			if u.Role == role {
				n++
			}
		}
		return nil
	})
	return n, err
}

// referenced compras, ventas y asientos apuntan a su usuario (FK sin cascada).
func referenced(st *state, userID string) bool {
	for _, p := range st.purchases {
		if p.UserID == userID {
			return true
		}
	}
	for _, s := range st.sales {
		if s.UserID == userID {
			return true
		}
	}
	for _, t := range st.ledger {
		if t.UserID == userID {
			return true
		}
	}
	return false
}
