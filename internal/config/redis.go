package config

// RedisConfig holds the single DSN the cache store connects with. Unlike the
// teacher's host/port/password fields, this proxy takes one REDIS_URL and
// lets redis.ParseURL do the decomposition.
type RedisConfig struct {
	URL string
}
