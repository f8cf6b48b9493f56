package constants

import "time"

// Context keys
const (
	ContextKeyPrincipal = "principal"
	ContextKeyRequestID = "request_id"
)

// HTTP headers
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	BearerPrefix        = "Bearer "
)

// Store layout
const (
	DefaultMongoDatabase = "freelance_marketplace"
	TasksCollection      = "tasks"
	BidsCollection       = "bids"
)

// Store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Identity
const (
	AnonymousName   = "Anonymous"
	DefaultTokenTTL = 24 * time.Hour
)
