package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/about"

	CreateAppRoute = "/create"
	VersionRoute   = "/{app_name}/version"
	BumpRoute      = "/{app_name}/bump"
	SetRoute       = "/{app_name}/set"
)
