package adapter

import (
	"context"
	"encoding/json"
	"time"

	cacheport "github.com/RiteshJadhav021/connectu-messaging/internal/infrastructure/cache/port"
	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
	repository "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/persistence/repository/port"
)

// CachedProfileRepository memoizes profile lookups through a cache port.
// The inbox resolves the same counterparts on every refresh; profile data
// changes rarely, so a short TTL keeps the enrichment pass cheap.
type CachedProfileRepository struct {
	inner repository.ProfileRepository
	cache cacheport.Cache
	ttl   time.Duration
}

const defaultProfileTTL = 5 * time.Minute

func NewCachedProfileRepository(inner repository.ProfileRepository, cache cacheport.Cache, ttl time.Duration) *CachedProfileRepository {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &CachedProfileRepository{inner: inner, cache: cache, ttl: ttl}
}

var _ repository.ProfileRepository = (*CachedProfileRepository)(nil)

func (r *CachedProfileRepository) GetProfile(ctx context.Context, role messaging.Role, id string) (repository.Profile, error) {
	key := "connectu:profile:" + role.String() + ":" + id

	// A cache outage is treated like a miss; the origin stays authoritative.
	if raw, err := r.cache.Get(ctx, key); err == nil {
		var p repository.Profile
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return p, nil
		}
	}

	p, err := r.inner.GetProfile(ctx, role, id)
	if err != nil {
		return repository.Profile{}, err
	}

	if raw, err := json.Marshal(p); err == nil {
		_ = r.cache.Set(ctx, key, string(raw), r.ttl)
	}
	return p, nil
}
