package user_test

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/proof"
	domain "github.com/soumyadeepdutta/tamperproof-users/internal/domain/user"
)

// fakeStore keeps users in memory and appends a revision per write.
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]domain.User
	revisions []domain.Revision
	txID      int
	err       error
	pingErr   error
	getCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]domain.User{}}
}

func (f *fakeStore) nextProof() proof.Proof {
	f.txID++
	return proof.Proof{Verified: true, TransactionID: strconv.Itoa(700 + f.txID), Descriptor: "fake-commit"}
}

func (f *fakeStore) record(op string, u domain.User) proof.Proof {
	p := f.nextProof()
	f.revisions = append(f.revisions, domain.Revision{
		Revision:      int64(len(f.revisions) + 1),
		Operation:     op,
		TransactionID: p.TransactionID,
		User:          u,
	})
	return p
}

func (f *fakeStore) Create(ctx context.Context, u domain.User) (proof.Proof, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return proof.Proof{}, f.err
	}
	f.users[u.ID] = u
	return f.record("INSERT", u), nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (domain.User, proof.Proof, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++
	if f.err != nil {
		return domain.User{}, proof.Proof{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, proof.Proof{}, domain.ErrUserNotFound
	}
	return u, proof.Proof{Verified: true}, nil
}

func (f *fakeStore) List(ctx context.Context) ([]domain.User, proof.Proof, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, proof.Proof{}, f.err
	}
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, proof.Proof{Verified: true}, nil
}

func (f *fakeStore) Update(ctx context.Context, u domain.User) (proof.Proof, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return proof.Proof{}, f.err
	}
	if _, ok := f.users[u.ID]; !ok {
		return proof.Proof{}, domain.ErrUserNotFound
	}
	f.users[u.ID] = u
	return f.record("UPDATE", u), nil
}

func (f *fakeStore) History(ctx context.Context, id string) ([]domain.Revision, proof.Proof, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, proof.Proof{}, f.err
	}
	var out []domain.Revision
	for _, rev := range f.revisions {
		if rev.User.ID == id {
			out = append(out, rev)
		}
	}
	return out, proof.Proof{Verified: true}, nil
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.pingErr
}
