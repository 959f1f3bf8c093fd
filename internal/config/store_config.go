package config

// Profile store kinds
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type StoreConfig interface {
	GetProfileStore() string
	GetRedisURL() string
	GetRedisKeyPrefix() string
}

type Store struct{}

var _ StoreConfig = Store{}

// GetProfileStore returns where the durable user profile lives: file, redis or memory.
func (Store) GetProfileStore() string {
	return GetEnv("PROFILE_STORE", StoreFile)
}

func (Store) GetRedisURL() string {
	return GetEnv("REDIS_URL", "")
}

func (Store) GetRedisKeyPrefix() string {
	return GetEnv("REDIS_KEY_PREFIX", "ims:")
}
