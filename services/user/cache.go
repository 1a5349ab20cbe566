package user

import (
	"context"
	"encoding/json"

	"quickcourt/models"
	"quickcourt/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// UserCache keeps authenticated users in Redis so the auth middleware does
// not hit Mongo on every request. Redis errors degrade to misses. Secrets are
// never cached: the JSON form of User omits them.
type UserCache struct {
	client *redis.Client
}

func NewUserCache(client *redis.Client) *UserCache {
	if client == nil {
		return nil
	}
	return &UserCache{client: client}
}

func (c *UserCache) key(id string) string {
	return utils.UserCachePrefix + id
}

func (c *UserCache) Get(ctx context.Context, id string) (*models.User, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, false
	}
	return &u, true
}

func (c *UserCache) Set(ctx context.Context, u *models.User) {
	if c == nil || u == nil {
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(u.ID), data, utils.UserCacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("user cache write failed", zap.String("userID", u.ID), zap.Error(err))
	}
}

func (c *UserCache) Evict(ctx context.Context, id string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		utils.GetLogger().Warn("user cache eviction failed", zap.String("userID", id), zap.Error(err))
	}
}
