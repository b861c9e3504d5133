package config

import (
	"fmt"
	"strings"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserNotificationChannel returns the pub/sub channel carrying live
// notifications for one user of one role.
func (r *CacheKeyStruct) UserNotificationChannel(role string, userID int64) string {
	return fmt.Sprintf("user:%s:%d:notifications", strings.ToLower(role), userID)
}

var CacheKey = NewCacheKeyStruct()
