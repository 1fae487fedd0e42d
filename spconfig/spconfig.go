// Package spconfig models the ServiceProviderConfig resource (spec §6):
// the feature-support flags a validator consults to decide which parts
// of a request are even legal to attempt.
package spconfig

// Supported is a bare capability flag, mirroring the wire shape of
// ServiceProviderConfig's sub-objects that carry no limits; bounded
// capabilities use BulkConfig and FilterConfig instead.
type Supported struct {
	Supported bool
}

// BulkConfig bounds bulk request size in addition to support.
type BulkConfig struct {
	Supported      bool
	MaxOperations  int
	MaxPayloadSize int
}

// FilterConfig bounds filter result size in addition to support.
type FilterConfig struct {
	Supported  bool
	MaxResults int
}

// AuthenticationScheme describes one supported authentication mechanism.
type AuthenticationScheme struct {
	Name        string
	Description string
	SpecURI     string
	Type        string
	Primary     bool
}

// ServiceProviderConfig is the plain configuration document a validator
// consults (spec §6); it carries no behavior of its own.
type ServiceProviderConfig struct {
	DocumentationURI      string
	Patch                 Supported
	Bulk                  BulkConfig
	Filter                FilterConfig
	ChangePassword        Supported
	Sort                  Supported
	ETag                  Supported
	AuthenticationSchemes []AuthenticationScheme
}

// Default returns a ServiceProviderConfig with every optional feature
// enabled and permissive limits, the common starting point for an
// embedding application to narrow down (spec §6).
func Default() ServiceProviderConfig {
	return ServiceProviderConfig{
		Patch:          Supported{Supported: true},
		Bulk:           BulkConfig{Supported: true, MaxOperations: 1000, MaxPayloadSize: 1 << 20},
		Filter:         FilterConfig{Supported: true, MaxResults: 200},
		ChangePassword: Supported{Supported: true},
		Sort:           Supported{Supported: true},
		ETag:           Supported{Supported: true},
	}
}
