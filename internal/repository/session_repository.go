package repository

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// SessionRepository 进程内会话表，读取时续期
type SessionRepository[T any] struct {
	cache *cache.Cache
}

func NewSessionRepository[T any](ttl time.Duration, onEvicted func(id string, session T)) *SessionRepository[T] {
	c := cache.New(ttl, 10*time.Minute)
	if onEvicted != nil {
		c.OnEvicted(func(id string, v interface{}) {
			if s, ok := v.(T); ok {
				onEvicted(id, s)
			}
		})
	}
	return &SessionRepository[T]{cache: c}
}

func (r *SessionRepository[T]) Save(id string, session T) {
	r.cache.Set(id, session, cache.DefaultExpiration)
}

func (r *SessionRepository[T]) Get(id string) (T, bool) {
	var zero T
	x, found := r.cache.Get(id)
	if !found {
		return zero, false
	}
	session, ok := x.(T)
	if !ok {
		return zero, false
	}
	r.cache.Set(id, session, cache.DefaultExpiration)
	return session, true
}

func (r *SessionRepository[T]) Delete(id string) {
	r.cache.Delete(id)
}

func (r *SessionRepository[T]) Count() int {
	return r.cache.ItemCount()
}
