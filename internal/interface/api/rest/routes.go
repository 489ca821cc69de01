package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteLogin = RouteAuth + "/login"

	// users, relative paths are mounted under RouteUsers
	RouteUsers      = RouteApiV1 + "/users"
	RouteCreate     = "/create"
	RouteAllUsers   = "/getAllUsers"
	RouteFindUsers  = "/findUsers"
	RouteBulkCreate = "/bulkCreate"
	RouteUser       = "/:" + ParamID

	ParamID = "id"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
