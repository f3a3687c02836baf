package service

import (
	"strings"
	"time"

	"github.com/parcelx-next/internal/constants"
	"github.com/parcelx-next/internal/models"
)

// formatClockTime 格式化时间线展示用的本地时间
func formatClockTime(t time.Time) string {
	return t.Format("3:04:05 PM")
}

// newStatusEntry 构建一条新的时间线事件。
// Delivered 状态的事件标记为已完成，location 为空时回退到收件地。
func newStatusEntry(status, location, notes string, shipping models.Shipping, now time.Time) models.TimelineEntry {
	status = strings.TrimSpace(status)
	location = strings.TrimSpace(location)
	if location == "" {
		location = shipping.To
	}
	return models.TimelineEntry{
		Status:    status,
		Date:      now,
		Time:      formatClockTime(now),
		Location:  location,
		Completed: status == constants.OrderStatusDelivered,
		Notes:     strings.TrimSpace(notes),
	}
}

// initialTimeline 创建订单时合成的初始时间线
func initialTimeline(shipping models.Shipping, now time.Time) models.Timeline {
	return models.Timeline{
		{
			Status:    constants.OrderStatusPlaced,
			Date:      now,
			Time:      formatClockTime(now),
			Location:  shipping.From,
			Completed: true,
		},
	}
}

// timelineStatusChanged 判断更新前后时间线是否发生状态变化：
// 长度不同，或末位事件的状态不同。
func timelineStatusChanged(before, after models.Timeline) bool {
	if len(before) != len(after) {
		return true
	}
	if len(after) == 0 {
		return false
	}
	return before[len(before)-1].Status != after[len(after)-1].Status
}
