// shared/registry/constants.go
package registry

const (
	// RedisRegistryHashPrefix is the prefix used for Redis hash keys that store
	// service registration data, e.g. "services:card-service".
	RedisRegistryHashPrefix = "services:"
)
