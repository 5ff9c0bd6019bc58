package application

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
	"github.com/rkhatri/storefront-core/internal/domain/repository"
	"github.com/rkhatri/storefront-core/internal/keycloak"
)

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]*entity.User

	createErr error // returned once by Create when set
	updateErr error
	getMiss   int // first N GetByEmail calls report not-found
	creates   int
	updates   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byMail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	if _, ok := r.byMail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	r.nextID++
	u.ID = r.nextID
	if u.UserID == "" {
		u.UserID = entity.NewUserCode()
	}
	cp := *u
	r.byMail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byMail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getMiss > 0 {
		r.getMiss--
		return nil, repository.ErrNotFound
	}
	u, ok := r.byMail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byMail[u.Email]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	r.byMail[u.Email] = &cp
	return nil
}

// fakeIDP scripts the identity-provider bridge.
type fakeIDP struct {
	grantErr  error
	ensureErr error
	ensured   []string
	grants    []string
}

func (f *fakeIDP) PasswordGrant(_ context.Context, username, _ string) (*keycloak.TokenSet, error) {
	f.grants = append(f.grants, username)
	if f.grantErr != nil {
		return nil, f.grantErr
	}
	return &keycloak.TokenSet{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 300}, nil
}

func (f *fakeIDP) EnsureUser(_ context.Context, email, _, _ string) error {
	f.ensured = append(f.ensured, email)
	return f.ensureErr
}

// fakeProductRepo serves a fixed catalog by product id.
type fakeProductRepo struct {
	products map[int64]entity.Product
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r *fakeProductRepo) ListActive(_ context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeAddressRepo holds addresses keyed by id.
type fakeAddressRepo struct {
	addresses map[int64]entity.Address
}

func (r *fakeAddressRepo) Create(_ context.Context, a *entity.Address) error {
	r.addresses[a.ID] = *a
	return nil
}

func (r *fakeAddressRepo) GetByIDForUser(_ context.Context, id, userID int64) (*entity.Address, error) {
	a, ok := r.addresses[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := a
	return &cp, nil
}

func (r *fakeAddressRepo) ListByUser(_ context.Context, userID int64) ([]entity.Address, error) {
	var out []entity.Address
	for _, a := range r.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAddressRepo) Update(_ context.Context, a *entity.Address) error {
	r.addresses[a.ID] = *a
	return nil
}

// fakeOrderRepo captures writes and serves canned aggregates.
type fakeOrderRepo struct {
	created   []*entity.Order
	createErr error

	counts map[entity.OrderStatus]int
	netSum decimal.Decimal
	listed []entity.Order
}

func (r *fakeOrderRepo) CreateWithItems(_ context.Context, o *entity.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	o.Normalize()
	o.ID = int64(len(r.created) + 1)
	r.created = append(r.created, o)
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *entity.Order) error {
	o.Normalize()
	return nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, _ int64, limit int) ([]entity.Order, error) {
	if limit > 0 && limit < len(r.listed) {
		return r.listed[:limit], nil
	}
	return r.listed, nil
}

func (r *fakeOrderRepo) StatusCounts(_ context.Context, _ int64) (map[entity.OrderStatus]int, error) {
	if r.counts == nil {
		return map[entity.OrderStatus]int{}, nil
	}
	return r.counts, nil
}

func (r *fakeOrderRepo) NetSum(_ context.Context, _ int64) (decimal.Decimal, error) {
	return r.netSum, nil
}
