// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
	SecurityAdmin                       // Access token of an admin required
)

func (l SecurityLevel) String() string {
	switch l {
	case SecurityPublic:
		return "public"
	case SecurityAccess:
		return "access"
	case SecurityAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// EndpointSecurityConfig maps route names to their required security level.
// Routes missing from the map require an access token.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Health & infrastructure - Public
	"Health":  SecurityPublic,
	"Metrics": SecurityPublic,

	// Auth - Public
	"Login":                SecurityPublic,
	"RequestPasswordReset": SecurityPublic,
	"ResetPassword":        SecurityPublic,

	// Auth - Access Protected
	"CurrentSession": SecurityAccess,

	// Rentals - Access Protected
	"ListRentals":   SecurityAccess,
	"ListOptions":   SecurityAccess,
	"CreateRental":  SecurityAccess,
	"UpdateRental":  SecurityAccess,
	"ToggleStatus":  SecurityAccess,
	"ProjectReport": SecurityAccess,
	"ExportRentals": SecurityAccess,

	// Rentals - Admin only
	"DeleteRental": SecurityAdmin,

	// Sharing
	"CreateShareLink":  SecurityAccess,
	"ResolveShareLink": SecurityPublic,

	// Read-only supplier view - Public
	"ViewRentals": SecurityPublic,
	"ViewReport":  SecurityPublic,
	"ViewExport":  SecurityPublic,

	// Attachments - Public
	"DownloadAttachment": SecurityPublic,

	// Users - Admin only
	"ListUsers":  SecurityAdmin,
	"CreateUser": SecurityAdmin,
	"DeleteUser": SecurityAdmin,
}

// RouteSecurity returns the level required for a named route.
func RouteSecurity(name string) SecurityLevel {
	if level, ok := EndpointSecurityConfig[name]; ok {
		return level
	}
	return SecurityAccess
}
