package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth     = RouteApiV1 + "/auth"
	RouteLogin    = RouteAuth + "/login"
	RouteRegister = RouteAuth + "/register"

	RouteUsers                = RouteApiV1 + "/users"
	RouteUser                 = RouteUsers + "/:user_id"
	RouteUserFiles            = RouteUser + "/files"
	RouteUserFile             = RouteUserFiles + "/:file_id"
	RouteUserFilesBatchDelete = RouteUserFiles + "/batch-delete"

	// sharing + public access
	RouteFiles     = RouteApiV1 + "/files"
	RouteFile      = RouteFiles + "/:file_id"
	RouteFileShare = RouteFile + "/share"
	RouteFileLink  = RouteFile + "/link"

	// ops
	RouteSweep   = RouteApiV1 + "/maintenance/sweep"
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)

// HeaderFilePassword carries the plaintext for password-gated public files;
// a header rather than a query param keeps it out of access logs.
const HeaderFilePassword = "X-File-Password"
