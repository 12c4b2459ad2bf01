package tenantcontext

// Shared session keys written at login and read by the context middleware
const (
	KeyTenantID   = "tenant_id"
	KeyTenantName = "tenant_name"
)
