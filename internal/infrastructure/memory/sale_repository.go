package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*saleRepo)(nil)

type saleRepo struct{ v *view }

func (r *saleRepo) Create(_ context.Context, s *entity.BookSale) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.sales[s.ID] = copySale(s)
		st.saleOrder = append(st.saleOrder, s.ID)
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.BookSale, error) {
	var out *entity.BookSale
	err := r.v.do(func(st *state) error {
		out = copySale(st.sales[id])
		return nil
	})
	return out, err
}

func (r *saleRepo) List(_ context.Context) ([]*entity.BookSale, error) {
	out := make([]*entity.BookSale, 0)
	err := r.v.do(func(st *state) error {
		for i := len(st.saleOrder) - 1; i >= 0; i-- {
			out = append(out, copySale(st.sales[st.saleOrder[i]]))
		}
		return nil
	})
	return out, err
}

func (r *saleRepo) TopBooks(_ context.Context, from, to time.Time, limit int) ([]repository.BookSalesTotal, error) {
	out := make([]repository.BookSalesTotal, 0)
	err := r.v.do(func(st *state) error {
		idx := make(map[string]int)
		for _, id := range st.saleOrder {
			s := st.sales[id]
			if s.CreatedAt.Before(from) || s.CreatedAt.After(to) {
				continue
			}
			i, ok := idx[s.BookID]
			if !ok {
				i = len(out)
				idx[s.BookID] = i
				out = append(out, repository.BookSalesTotal{BookID: s.BookID})
			}
			out[i].Quantity += s.Quantity
			out[i].Revenue = out[i].Revenue.Add(s.TotalPrice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].BookID < out[j].BookID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
