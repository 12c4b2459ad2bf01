package constants

// Route constants shared between the router and the subscription gate.
// The gate exempts each remediation page from its own redirect to avoid
// redirect loops.
const (
	RouteVerifyRequired = "/verify-required"
	RouteCheckout       = "/checkout"
	RoutePackages       = "/packages"
	RouteLogin          = "/login"

	APIPrefix = "/api/v1"
)
