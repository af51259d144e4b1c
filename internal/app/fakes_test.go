package app_test

import (
	"context"
	"sync"

	"kittyfit/internal/domain"
)

// fakeCache is an in-memory cache with injectable failures.
type fakeCache struct {
	mu        sync.Mutex
	data      map[string]string
	getErr    error
	setErr    error
	removeErr error
	setCalls  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func (c *fakeCache) Remove(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.removeErr != nil {
		return c.removeErr
	}
	delete(c.data, key)
	return nil
}

func (c *fakeCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *fakeCache) put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

// fakeIdentity is an identity provider with a fixed answer.
type fakeIdentity struct {
	mu          sync.Mutex
	profile     *domain.UserProfile
	err         error
	remembered  string
	forgetCalls int
}

func (f *fakeIdentity) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeIdentity) Remember(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remembered = userID
	return nil
}

func (f *fakeIdentity) Forget(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remembered = ""
	f.forgetCalls++
	return nil
}
