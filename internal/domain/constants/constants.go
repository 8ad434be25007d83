// Package constants contains values shared between configuration and infrastructure.
package constants

const (
	// EnvDevelop is the environment name used for local development.
	EnvDevelop = "develop"
	// EnvProduction is the environment name used in production.
	EnvProduction = "production"
)

// Pub/Sub providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Persistence drivers.
const (
	PersistenceDriverPostgres = "postgres"
	PersistenceDriverMemory   = "memory"
)

// Order event types published after a successful write.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)
