package entityService

import (
	"context"
	"strings"
	"sync"

	"github.com/KotFed0t/portfolio_tracker/data/repository"
	"github.com/KotFed0t/portfolio_tracker/internal/model"
)

// fakeRepo keeps rows in maps and enforces the same unique and foreign key rules as the schema.
type fakeRepo struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]model.UserAccount
	portfolios map[int64]model.Portfolio
	assets     map[int64]model.Asset
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:      map[int64]model.UserAccount{},
		portfolios: map[int64]model.Portfolio{},
		assets:     map[int64]model.Asset{},
	}
}

func (r *fakeRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *fakeRepo) WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error {
	return tFunc(ctx)
}

func (r *fakeRepo) InsertUserAccount(_ context.Context, user model.UserAccount) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Login == user.Login {
			return 0, repository.ErrAlreadyExists
		}
	}
	user.ID = r.id()
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *fakeRepo) UpdateUserAccount(_ context.Context, user model.UserAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Login == user.Login && u.ID != user.ID {
			return repository.ErrAlreadyExists
		}
	}
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeRepo) GetUserAccount(_ context.Context, userID int64) (model.UserAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return model.UserAccount{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetUserAccounts(context.Context, model.PageRequest) (model.Page[model.UserAccount], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page := model.Page[model.UserAccount]{Total: int64(len(r.users))}
	for _, u := range r.users {
		page.Items = append(page.Items, u)
	}
	return page, nil
}

func (r *fakeRepo) DeleteUserAccount(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	for id, p := range r.portfolios {
		if p.User != nil && p.User.ID == userID {
			p.User = nil
			r.portfolios[id] = p
		}
	}
	return nil
}

func (r *fakeRepo) checkUser(user *model.UserRef) error {
	if user == nil {
		return nil
	}
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrReferenceNotFound
	}
	return nil
}

func (r *fakeRepo) InsertPortfolio(_ context.Context, portfolio model.Portfolio) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUser(portfolio.User); err != nil {
		return 0, err
	}
	portfolio.ID = r.id()
	r.portfolios[portfolio.ID] = portfolio
	return portfolio.ID, nil
}

func (r *fakeRepo) UpdatePortfolio(_ context.Context, portfolio model.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUser(portfolio.User); err != nil {
		return err
	}
	if _, ok := r.portfolios[portfolio.ID]; !ok {
		return repository.ErrNotFound
	}
	r.portfolios[portfolio.ID] = portfolio
	return nil
}

func (r *fakeRepo) GetPortfolio(_ context.Context, portfolioID int64) (model.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.portfolios[portfolioID]
	if !ok {
		return model.Portfolio{}, repository.ErrNotFound
	}
	if p.User != nil {
		p.User = &model.UserRef{ID: p.User.ID, Login: r.users[p.User.ID].Login}
	}
	return p, nil
}

func (r *fakeRepo) GetPortfolios(context.Context, model.PageRequest) (model.Page[model.Portfolio], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page := model.Page[model.Portfolio]{Total: int64(len(r.portfolios))}
	for _, p := range r.portfolios {
		page.Items = append(page.Items, p)
	}
	return page, nil
}

func (r *fakeRepo) DeletePortfolio(_ context.Context, portfolioID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.portfolios, portfolioID)
	for id, a := range r.assets {
		if a.Portfolio.ID == portfolioID {
			delete(r.assets, id)
		}
	}
	return nil
}

func (r *fakeRepo) checkAsset(asset model.Asset) error {
	if _, ok := r.portfolios[asset.Portfolio.ID]; !ok {
		return repository.ErrReferenceNotFound
	}
	for _, a := range r.assets {
		if a.ID != asset.ID && a.Portfolio.ID == asset.Portfolio.ID && strings.EqualFold(a.Ticker, asset.Ticker) {
			return repository.ErrAlreadyExists
		}
	}
	return nil
}

func (r *fakeRepo) InsertAsset(_ context.Context, asset model.Asset) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkAsset(asset); err != nil {
		return 0, err
	}
	asset.ID = r.id()
	r.assets[asset.ID] = asset
	return asset.ID, nil
}

func (r *fakeRepo) UpdateAsset(_ context.Context, asset model.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkAsset(asset); err != nil {
		return err
	}
	if _, ok := r.assets[asset.ID]; !ok {
		return repository.ErrNotFound
	}
	r.assets[asset.ID] = asset
	return nil
}

func (r *fakeRepo) GetAsset(_ context.Context, assetID int64) (model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[assetID]
	if !ok {
		return model.Asset{}, repository.ErrNotFound
	}
	a.Portfolio.Name = r.portfolios[a.Portfolio.ID].Name
	return a, nil
}

func (r *fakeRepo) GetAssets(context.Context, model.PageRequest) (model.Page[model.Asset], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page := model.Page[model.Asset]{Total: int64(len(r.assets))}
	for _, a := range r.assets {
		page.Items = append(page.Items, a)
	}
	return page, nil
}

func (r *fakeRepo) DeleteAsset(_ context.Context, assetID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.assets, assetID)
	return nil
}

// fakeCache records evictions; entries are written asynchronously by the services.
type fakeCache struct {
	mu              sync.Mutex
	users           map[int64]model.UserAccount
	portfolios      map[int64]model.Portfolio
	assets          map[int64]model.Asset
	evicted         []string
	portfolioFlushes int
	assetFlushes     int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		users:      map[int64]model.UserAccount{},
		portfolios: map[int64]model.Portfolio{},
		assets:     map[int64]model.Asset{},
	}
}

func getCached[T any](mu *sync.Mutex, m map[int64]T, id int64) (T, error) {
	mu.Lock()
	defer mu.Unlock()
	v, ok := m[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return v, nil
}

func setCached[T any](mu *sync.Mutex, m map[int64]T, id int64, v T) error {
	mu.Lock()
	defer mu.Unlock()
	m[id] = v
	return nil
}

func (c *fakeCache) evict(kind string, id int64, remove func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	remove()
	c.evicted = append(c.evicted, kind)
	return nil
}

func (c *fakeCache) GetUserAccount(_ context.Context, userID int64) (model.UserAccount, error) {
	return getCached(&c.mu, c.users, userID)
}

func (c *fakeCache) SetUserAccount(_ context.Context, user model.UserAccount) error {
	return setCached(&c.mu, c.users, user.ID, user)
}

func (c *fakeCache) EvictUserAccount(_ context.Context, userID int64) error {
	return c.evict("userAccount", userID, func() { delete(c.users, userID) })
}

func (c *fakeCache) GetPortfolio(_ context.Context, portfolioID int64) (model.Portfolio, error) {
	return getCached(&c.mu, c.portfolios, portfolioID)
}

func (c *fakeCache) SetPortfolio(_ context.Context, portfolio model.Portfolio) error {
	return setCached(&c.mu, c.portfolios, portfolio.ID, portfolio)
}

func (c *fakeCache) EvictPortfolio(_ context.Context, portfolioID int64) error {
	return c.evict("portfolio", portfolioID, func() { delete(c.portfolios, portfolioID) })
}

func (c *fakeCache) FlushPortfolios(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.portfolios)
	c.portfolioFlushes++
	return nil
}

func (c *fakeCache) GetAsset(_ context.Context, assetID int64) (model.Asset, error) {
	return getCached(&c.mu, c.assets, assetID)
}

func (c *fakeCache) SetAsset(_ context.Context, asset model.Asset) error {
	return setCached(&c.mu, c.assets, asset.ID, asset)
}

func (c *fakeCache) EvictAsset(_ context.Context, assetID int64) error {
	return c.evict("asset", assetID, func() { delete(c.assets, assetID) })
}

func (c *fakeCache) FlushAssets(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.assets)
	c.assetFlushes++
	return nil
}
