package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"

	// Settings category holding per-class retire flow bindings.
	SettingCategoryAsset = "asset"

	DefaultEventChannel = "assetdesk:asset:events"
)
