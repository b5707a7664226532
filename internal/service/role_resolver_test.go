package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"intellistudy_backend/internal/config"
	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoleLookup struct {
	mu    sync.Mutex
	calls map[string]int
	roles map[string]model.UserRole
	err   error
	gate  chan struct{}
}

func newFakeRoleLookup(roles map[string]model.UserRole) *fakeRoleLookup {
	return &fakeRoleLookup{calls: map[string]int{}, roles: roles}
}

func (f *fakeRoleLookup) LookupRole(_ context.Context, email string) (model.UserRole, error) {
	f.mu.Lock()
	f.calls[email]++
	gate, err := f.gate, f.err
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return model.Undetermined, err
	}
	return f.roles[email], nil
}

func (f *fakeRoleLookup) Calls(email string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[email]
}

func TestRoleResolverCachesPerIdentity(t *testing.T) {
	lookup := newFakeRoleLookup(map[string]model.UserRole{
		"admin@example.com": model.Admin,
		"user@example.com":  model.Member,
	})
	r := NewRoleResolver(lookup)
	ctx := context.Background()

	assert.Equal(t, model.Guest, r.Current())
	assert.False(t, r.CanAccessAdmin())

	assert.Equal(t, model.Admin, r.OnIdentityEstablished(ctx, "admin@example.com"))
	assert.Equal(t, model.Admin, r.OnIdentityEstablished(ctx, " Admin@Example.com "))
	assert.Equal(t, 1, lookup.Calls("admin@example.com"))
	assert.True(t, r.CanAccessAdmin())

	assert.Equal(t, model.Member, r.OnIdentityEstablished(ctx, "user@example.com"))
	assert.Equal(t, 1, lookup.Calls("user@example.com"))
	assert.False(t, r.CanAccessAdmin())

	r.Reset()
	assert.Equal(t, model.Guest, r.Current())
	assert.Equal(t, model.Admin, r.OnIdentityEstablished(ctx, "admin@example.com"))
	assert.Equal(t, 2, lookup.Calls("admin@example.com"))
}

func TestRoleResolverEmptyIdentityIsGuest(t *testing.T) {
	lookup := newFakeRoleLookup(nil)
	r := NewRoleResolver(lookup)

	assert.Equal(t, model.Guest, r.OnIdentityEstablished(context.Background(), "  "))
	assert.Zero(t, lookup.Calls(""))
}

func TestRoleResolverFailureFailsClosed(t *testing.T) {
	lookup := newFakeRoleLookup(nil)
	lookup.err = errors.New("connection refused")
	r := NewRoleResolver(lookup)
	ctx := context.Background()

	assert.Equal(t, model.Undetermined, r.OnIdentityEstablished(ctx, "admin@example.com"))
	assert.False(t, r.CanAccessAdmin())

	// 失败结果同样按身份缓存
	r.OnIdentityEstablished(ctx, "admin@example.com")
	assert.Equal(t, 1, lookup.Calls("admin@example.com"))
}

func TestRoleResolverCoalescesConcurrentTriggers(t *testing.T) {
	lookup := newFakeRoleLookup(map[string]model.UserRole{"meta@example.com": model.MetaAdmin})
	lookup.gate = make(chan struct{})
	r := NewRoleResolver(lookup)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.OnIdentityEstablished(context.Background(), "meta@example.com")
		}()
	}
	close(lookup.gate)
	wg.Wait()

	assert.Equal(t, 1, lookup.Calls("meta@example.com"))
	assert.Equal(t, model.MetaAdmin, r.Current())
}

func TestRoleResolverDiscardsSupersededResult(t *testing.T) {
	slow := newFakeRoleLookup(map[string]model.UserRole{"admin@example.com": model.Admin})
	slow.gate = make(chan struct{})
	r := NewRoleResolver(slow)

	done := make(chan model.UserRole)
	go func() { done <- r.OnIdentityEstablished(context.Background(), "admin@example.com") }()

	require.Eventually(t, func() bool { return slow.Calls("admin@example.com") == 1 }, time.Second, time.Millisecond)
	r.Reset()
	close(slow.gate)
	<-done

	assert.Equal(t, model.Guest, r.Current())
	assert.False(t, r.CanAccessAdmin())
}

func TestRoleLookupClient(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    model.UserRole
		wantErr bool
	}{
		{"admin", http.StatusOK, `{"role":"admin"}`, model.Admin, false},
		{"unknown role", http.StatusOK, `{"role":"superuser"}`, model.Undetermined, false},
		{"missing role", http.StatusOK, `{}`, model.Undetermined, true},
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, model.Undetermined, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "a@example.com", body["email"])
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewRoleLookupClient(config.RoleLookupConfig{URL: srv.URL, TimeoutSeconds: 1})
			role, err := client.LookupRole(context.Background(), "a@example.com")
			if tt.wantErr {
				assert.ErrorIs(t, err, util.ErrRoleLookupFailed)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, role)
			assert.False(t, role.IsPrivileged() && tt.wantErr)
		})
	}
}

func TestRoleResolverEstablishDoesNotWait(t *testing.T) {
	lookup := newFakeRoleLookup(map[string]model.UserRole{"admin@example.com": model.Admin})
	lookup.gate = make(chan struct{})
	r := NewRoleResolver(lookup)

	r.Establish(context.Background(), "Admin@Example.com")
	assert.Equal(t, model.Undetermined, r.Current())
	assert.False(t, r.CanAccessAdmin())

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Equal(t, model.Undetermined, r.Await(short))

	close(lookup.gate)
	assert.Equal(t, model.Admin, r.Await(context.Background()))
	assert.Equal(t, 1, lookup.Calls("admin@example.com"))
}

func TestRoleResolverReidentifyJoinsInFlightLookup(t *testing.T) {
	lookup := newFakeRoleLookup(map[string]model.UserRole{"admin@example.com": model.Admin})
	lookup.gate = make(chan struct{})
	r := NewRoleResolver(lookup)

	r.Establish(context.Background(), "admin@example.com")
	require.Eventually(t, func() bool { return lookup.Calls("admin@example.com") == 1 }, time.Second, time.Millisecond)

	// 退出后立即以同一身份重新登录
	r.Reset()
	r.Establish(context.Background(), "admin@example.com")
	close(lookup.gate)

	assert.Equal(t, model.Admin, r.Await(context.Background()))
	assert.Equal(t, 1, lookup.Calls("admin@example.com"))
}
