package logging

import "log/slog"

// Common field names for consistent logging across components.
const (
	FieldService  = "service"
	FieldTenantID = "tenant_id"
	FieldQueue    = "queue"
	FieldDomain   = "domain"
	FieldRiskName = "risk_name"
	FieldRiskUser = "risk_user"
	FieldError    = "error"
	FieldDuration = "duration_ms"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// Tenant returns a slog attribute for the tenant ID.
func Tenant(id int64) slog.Attr {
	return slog.Int64(FieldTenantID, id)
}

// Queue returns a slog attribute for a broker queue name.
func Queue(name string) slog.Attr {
	return slog.String(FieldQueue, name)
}

// Domain returns a slog attribute for a business domain name.
func Domain(name string) slog.Attr {
	return slog.String(FieldDomain, name)
}

// RiskName returns a slog attribute for a catalog risk name.
func RiskName(name string) slog.Attr {
	return slog.String(FieldRiskName, name)
}

// RiskUser returns a slog attribute for a risk user type.
func RiskUser(user string) slog.Attr {
	return slog.String(FieldRiskUser, user)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}

// Duration returns a slog attribute for duration in milliseconds.
func Duration(ms int64) slog.Attr {
	return slog.Int64(FieldDuration, ms)
}
