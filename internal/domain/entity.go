package domain

import "time"

// Entity is implemented by every record kind a repository can own.
// WithIdentity returns a copy carrying the given identity and creation time;
// kinds without a creation time ignore createdAt.
type Entity[T any] interface {
	Identity() string
	Created() time.Time
	WithIdentity(id string, createdAt time.Time) T
}
