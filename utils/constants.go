package utils

import "time"

// UserCachePrefix is the prefix used for cached authenticated users.
const UserCachePrefix = "auth:user:"

// UserCacheTTL is the time-to-live for cached authenticated users.
const UserCacheTTL = 10 * time.Minute

// SlotGridCachePrefix prefixes cached slot grids, keyed by court and date.
const SlotGridCachePrefix = "slots:"

// SlotGridCacheTTL bounds how stale a cached grid can be if an invalidation is lost.
const SlotGridCacheTTL = 2 * time.Minute

// OTPTTL is how long an emailed verification code stays valid.
const OTPTTL = 10 * time.Minute
