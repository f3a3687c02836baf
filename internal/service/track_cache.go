package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/parcelx-next/internal/cache"
	"github.com/parcelx-next/internal/logger"
	"github.com/parcelx-next/internal/models"
)

// TrackCacheKey 追踪查询缓存 key，引用大小写不敏感
func TrackCacheKey(ref string) string {
	return "track:" + strings.ToUpper(strings.TrimSpace(ref))
}

// invalidateTrackCache 订单变更后清除追踪缓存，ID 与追踪编号两个入口都要清
func invalidateTrackCache(order *models.Order) {
	if order == nil || !cache.Enabled() {
		return
	}
	ctx := context.Background()
	keys := []string{
		TrackCacheKey(fmt.Sprintf("%d", order.ID)),
		TrackCacheKey(order.TrackingID),
	}
	for _, key := range keys {
		if err := cache.Del(ctx, key); err != nil {
			logger.Debugw("track_cache_del_failed", "key", key, "error", err)
		}
	}
}
