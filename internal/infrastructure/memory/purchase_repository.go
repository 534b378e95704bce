package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*purchaseRepo)(nil)

type purchaseRepo struct{ v *view }

func (r *purchaseRepo) Create(_ context.Context, p *entity.BookPurchase) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.purchases[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.purchases[p.ID] = copyPurchase(p)
		st.purchOrder = append(st.purchOrder, p.ID)
		return nil
	})
}

func (r *purchaseRepo) GetByID(_ context.Context, id string) (*entity.BookPurchase, error) {
	var out *entity.BookPurchase
	err := r.v.do(func(st *state) error {
		out = copyPurchase(st.purchases[id])
		return nil
	})
	return out, err
}

// GetForUpdate dentro de Run el candado del store ya serializa la unidad de trabajo.
func (r *purchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.BookPurchase, error) {
	return r.GetByID(ctx, id)
}

func (r *purchaseRepo) List(_ context.Context, status *entity.PurchaseStatus) ([]*entity.BookPurchase, error) {
	out := make([]*entity.BookPurchase, 0)
	err := r.v.do(func(st *state) error {
		for _, id := range st.purchOrder {
			p := st.purchases[id]
			if status != nil && p.Status != *status {
				continue
			}
			out = append(out, copyPurchase(p))
		}
		return nil
	})
	return out, err
}

func (r *purchaseRepo) UpdateStatus(_ context.Context, id string, status entity.PurchaseStatus, at time.Time) error {
	return r.v.do(func(st *state) error {
		p, ok := st.purchases[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Status = status
		p.UpdatedAt = at
		return nil
	})
}
