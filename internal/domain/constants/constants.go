// Package constants holds configuration values shared across layers.
package constants

const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderGoogle = "google"
	PubSubProviderLocal  = "local"
)

// Identity providers
const (
	AuthProviderJWT      = "jwt"
	AuthProviderFirebase = "firebase"
)

// Checkout inventory modes
const (
	// InventoryModeOverwrite writes current snapshot inventory minus quantity.
	InventoryModeOverwrite = "overwrite"
	// InventoryModeConditional decrements atomically only when stock remains.
	InventoryModeConditional = "conditional"
)

// DefaultCountry fills the shipping country when the checkout form leaves it blank.
const DefaultCountry = "México"
