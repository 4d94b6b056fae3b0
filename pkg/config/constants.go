package config

// EnvPrefix is empty because every field carries the fully-qualified
// VIDEOTEKA_ name in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
