// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis admin-token cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL bounds both the issued admin token's lifetime and its
// cache entry, so revocation state never outlives the token.
const AuthCacheTTL = 12 * time.Hour

// VaultCachePrefix is the prefix for cached vault list/detail responses.
const VaultCachePrefix = "vaults:"

// PositionCachePrefix is the prefix for cached per-wallet position responses.
const PositionCachePrefix = "positions:"

// ActivityCachePrefix is the prefix for cached activity feed responses.
const ActivityCachePrefix = "activity:"

// TransparencyCachePrefix is the prefix for cached transparency reports.
const TransparencyCachePrefix = "transparency:"

// ReadCacheTTL is the time-to-live for cached read-endpoint responses.
// Short on purpose: the invalidation ladder handles mutation staleness,
// the TTL only bounds how long a missed invalidation can linger.
const ReadCacheTTL = 60 * time.Second
