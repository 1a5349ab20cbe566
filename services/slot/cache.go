package slot

import (
	"context"
	"encoding/json"

	"quickcourt/models"
	"quickcourt/utils"

	"go.uber.org/zap"
)

func gridCacheKey(courtID, date string) string {
	return utils.SlotGridCachePrefix + courtID + ":" + date
}

// cachedGrid treats every Redis failure as a miss.
func (s *DefaultSlotService) cachedGrid(ctx context.Context, courtID, date string) ([]models.TimeSlot, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, err := s.Cache.Get(ctx, gridCacheKey(courtID, date)).Bytes()
	if err != nil {
		return nil, false
	}
	var grid []models.TimeSlot
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil, false
	}
	return grid, true
}

func (s *DefaultSlotService) storeGrid(ctx context.Context, courtID, date string, grid []models.TimeSlot) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(grid)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, gridCacheKey(courtID, date), data, utils.SlotGridCacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("slot grid cache write failed", zap.String("courtId", courtID), zap.Error(err))
	}
}

func (s *DefaultSlotService) invalidate(ctx context.Context, courtID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, gridCacheKey(courtID, date)).Err(); err != nil {
		utils.GetLogger().Warn("slot grid cache invalidation failed", zap.String("courtId", courtID), zap.String("date", date), zap.Error(err))
	}
}

func (s *DefaultSlotService) Invalidate(ctx context.Context, keys ...models.SlotKey) {
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k.CourtID+":"+k.Date] {
			continue
		}
		seen[k.CourtID+":"+k.Date] = true
		s.invalidate(ctx, k.CourtID, k.Date)
	}
}

func (s *DefaultSlotService) InvalidateCourt(ctx context.Context, courtID string) {
	if s.Cache == nil {
		return
	}
	var keys []string
	iter := s.Cache.Scan(ctx, 0, gridCacheKey(courtID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		utils.GetLogger().Warn("slot grid cache scan failed", zap.String("courtId", courtID), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("slot grid cache invalidation failed", zap.String("courtId", courtID), zap.Error(err))
	}
}
