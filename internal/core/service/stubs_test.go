package service

import (
	"context"
	"errors"

	"github.com/gms2/gms-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	order   []string
	byID    map[string]*domain.User
	updates int
	deletes int
	listErr error
	findErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		r.put(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) put(u *domain.User) {
	if _, ok := r.byID[u.ID]; !ok {
		r.order = append(r.order, u.ID)
	}
	r.byID[u.ID] = cloneUser(u)
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneUser(r.byID[id]))
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByLogin(_ context.Context, normalized string) (*domain.User, error) {
	for _, id := range r.order {
		u := r.byID[id]
		if u.NormalizedUserName == normalized || u.NormalizedEmail == normalized {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if _, ok := r.byID[u.ID]; ok {
		return domain.ErrUserExists
	}
	r.put(u)
	return nil
}

// Update mirrors the Mongo $set: only profile fields are written.
func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	stored, ok := r.byID[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	stored.UserName = u.UserName
	stored.NormalizedUserName = u.NormalizedUserName
	stored.Email = u.Email
	stored.NormalizedEmail = u.NormalizedEmail
	stored.FirstName = u.FirstName
	stored.LastName = u.LastName
	stored.AddressLine1 = u.AddressLine1
	stored.City = u.City
	stored.State = u.State
	stored.PhoneNumber = u.PhoneNumber
	r.updates++
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.deletes++
	return nil
}

type stubRoleRepo struct {
	byName    map[string]*domain.Role
	creates   int
	existsErr error
	createErr map[string]error
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{byName: make(map[string]*domain.Role), createErr: make(map[string]error)}
}

func (r *stubRoleRepo) Exists(_ context.Context, name string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.byName[domain.Normalize(name)]
	return ok, nil
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) error {
	if err := r.createErr[role.Name]; err != nil {
		return err
	}
	if _, ok := r.byName[role.NormalizedName]; ok {
		return domain.ErrRoleExists
	}
	r.byName[role.NormalizedName] = role
	r.creates++
	return nil
}

// stubCache follows the add-only fill contract: a fill never overwrites an
// entry and is refused for ids that were invalidated.
type stubCache struct {
	items       map[string]*domain.User
	tombstones  map[string]bool
	getErr      error
	hits        int
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{items: make(map[string]*domain.User), tombstones: make(map[string]bool)}
}

func (c *stubCache) Get(_ context.Context, id string) (*domain.User, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	u, ok := c.items[id]
	if ok {
		c.hits++
	}
	return cloneUser(u), ok, nil
}

func (c *stubCache) Fill(_ context.Context, u *domain.User) error {
	if _, ok := c.items[u.ID]; ok || c.tombstones[u.ID] {
		return nil
	}
	c.items[u.ID] = cloneUser(u)
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, id string) error {
	delete(c.items, id)
	c.tombstones[id] = true
	c.invalidated = append(c.invalidated, id)
	return nil
}

// racingUserRepo runs afterFind once, right after the first FindByID returns,
// to interleave a write between a read-through load and its cache fill.
type racingUserRepo struct {
	*stubUserRepo
	afterFind func()
}

func (r *racingUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := r.stubUserRepo.FindByID(ctx, id)
	if hook := r.afterFind; hook != nil {
		r.afterFind = nil
		hook()
	}
	return u, err
}

type stubMetrics struct {
	operations map[string]int
	lookups    map[string]int
	roles      []string
	logins     map[string]int
	registered int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{
		operations: make(map[string]int),
		lookups:    make(map[string]int),
		logins:     make(map[string]int),
	}
}

func (m *stubMetrics) UserOperation(operation, result string) { m.operations[operation+"/"+result]++ }
func (m *stubMetrics) UserCacheLookup(result string)          { m.lookups[result]++ }
func (m *stubMetrics) RoleCreated(role string)                { m.roles = append(m.roles, role) }
func (m *stubMetrics) Login(result string)                    { m.logins[result]++ }
func (m *stubMetrics) Registration()                          { m.registered++ }

var errStore = errors.New("store unavailable")
