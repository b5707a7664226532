package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"intellistudy_backend/internal/config"
	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/util"
	"intellistudy_backend/pkg/logger"
	"intellistudy_backend/pkg/monitoring"
	"intellistudy_backend/pkg/tracing"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RoleLookup 外部角色查询服务
type RoleLookup interface {
	LookupRole(ctx context.Context, email string) (model.UserRole, error)
}

type roleLookupRequest struct {
	Email string `json:"email"`
}

type roleLookupResponse struct {
	Role *string `json:"role"`
}

type RoleLookupClient struct {
	url     string
	timeout atomic.Int64
	http    *resty.Client
}

func NewRoleLookupClient(cfg config.RoleLookupConfig) *RoleLookupClient {
	c := &RoleLookupClient{url: cfg.URL, http: resty.New()}
	c.SetTimeout(cfg.Timeout())
	return c
}

func (c *RoleLookupClient) SetTimeout(d time.Duration) {
	c.timeout.Store(int64(d))
}

func (c *RoleLookupClient) LookupRole(ctx context.Context, email string) (model.UserRole, error) {
	ctx, span := tracing.StartSpan(ctx, "role.lookup")
	defer span.End()

	if d := time.Duration(c.timeout.Load()); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	var out roleLookupResponse
	resp, err := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(roleLookupRequest{Email: email}).
		SetResult(&out).
		Post(c.url)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return model.Undetermined, fmt.Errorf("%w: %v", util.ErrRoleLookupFailed, err)
	}
	if resp.IsError() {
		span.SetStatus(codes.Error, resp.Status())
		return model.Undetermined, fmt.Errorf("%w: %s", util.ErrRoleLookupFailed, resp.Status())
	}
	if out.Role == nil {
		return model.Undetermined, fmt.Errorf("%w: missing role", util.ErrRoleLookupFailed)
	}
	return model.ParseRole(*out.Role), nil
}

// RoleResolver 按身份缓存角色，身份变化时重新解析。
// 同一身份同时最多一个查询在途，失败一律视为 undetermined。
type RoleResolver struct {
	lookup RoleLookup
	group  singleflight.Group

	mu       sync.Mutex
	email    string
	role     model.UserRole
	resolved bool
	ready    chan struct{} // 当前身份解析完成时关闭
}

func NewRoleResolver(lookup RoleLookup) *RoleResolver {
	ready := make(chan struct{})
	close(ready)
	return &RoleResolver{lookup: lookup, role: model.Guest, resolved: true, ready: ready}
}

// OnIdentityEstablished 解析并等待结果，ctx 结束时返回 undetermined
func (r *RoleResolver) OnIdentityEstablished(ctx context.Context, email string) model.UserRole {
	email = normalizeEmail(email)
	if email == "" {
		r.Reset()
		return model.Guest
	}
	if role, ok := r.begin(email); ok {
		return role
	}

	select {
	case <-ctx.Done():
		return model.Undetermined
	case res := <-r.resolve(ctx, email):
		return res.Val.(model.UserRole)
	}
}

// Establish 记录新身份并在后台解析，不等待结果。解析完成前 Current 返回 undetermined。
func (r *RoleResolver) Establish(ctx context.Context, email string) {
	email = normalizeEmail(email)
	if email == "" {
		r.Reset()
		return
	}
	if _, ok := r.begin(email); ok {
		return
	}
	r.resolve(ctx, email)
}

// begin 已解析过同一身份时返回缓存的角色；身份变化时标记为未解析
func (r *RoleResolver) begin(email string) (model.UserRole, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.email == email && r.resolved {
		monitoring.RoleResolutions.WithLabelValues(monitoring.RoleCached).Inc()
		return r.role, true
	}
	if r.email != email {
		r.settle()
		r.email = email
		r.role = model.Undetermined
		r.resolved = false
		r.ready = make(chan struct{})
	}
	return "", false
}

// resolve 同一身份的查询共享一次调用
func (r *RoleResolver) resolve(ctx context.Context, email string) <-chan singleflight.Result {
	return r.group.DoChan(email, func() (interface{}, error) {
		if role, ok := r.cached(email); ok {
			return role, nil
		}

		role, err := r.lookup.LookupRole(context.WithoutCancel(ctx), email)
		if err != nil {
			monitoring.RoleResolutions.WithLabelValues(monitoring.RoleFailed).Inc()
			logger.Log.Warn("role lookup failed", zap.String("email", email), zap.Error(err))
			role = model.Undetermined
		} else {
			monitoring.RoleResolutions.WithLabelValues(monitoring.RoleResolved).Inc()
		}

		r.mu.Lock()
		// 身份已经切换，丢弃旧结果
		if r.email == email {
			r.role = role
			r.resolved = true
			r.settle()
		}
		r.mu.Unlock()
		return role, nil
	})
}

// settle 需持有 mu
func (r *RoleResolver) settle() {
	select {
	case <-r.ready:
	default:
		close(r.ready)
	}
}

func (r *RoleResolver) cached(email string) (model.UserRole, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.email == email && r.resolved {
		return r.role, true
	}
	return "", false
}

func (r *RoleResolver) Current() model.UserRole {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.resolved {
		return model.Undetermined
	}
	return r.role
}

// Await 等待当前身份解析完成，ctx 结束时返回 undetermined
func (r *RoleResolver) Await(ctx context.Context) model.UserRole {
	for {
		r.mu.Lock()
		if r.resolved {
			role := r.role
			r.mu.Unlock()
			return role
		}
		ready := r.ready
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return model.Undetermined
		case <-ready:
		}
	}
}

func (r *RoleResolver) Email() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.email
}

func (r *RoleResolver) CanAccessAdmin() bool {
	return r.Current().IsPrivileged()
}

// Reset 退出登录。在途查询不取消，结果因身份不匹配被丢弃。
func (r *RoleResolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.email = ""
	r.role = model.Guest
	r.resolved = true
	r.settle()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
