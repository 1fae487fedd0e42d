package scim

import (
	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/schema"
	"github.com/scimcore/scim/spconfig"
	"github.com/scimcore/scim/validator"
)

// ResourceType binds a ResourceSchema to the endpoint it is served at,
// the way a SCIM server's /ResourceTypes listing does, and is the unit
// an embedding application registers with the library.
type ResourceType struct {
	ID          string
	Name        string
	Endpoint    string
	Description string
	Schema      *schema.ResourceSchema
}

// Registry is a process-wide collection of ResourceTypes, keyed by
// endpoint, plus the service-provider configuration validators consult
// (spec §5: immutable once built, safe for concurrent reads).
type Registry struct {
	config        spconfig.ServiceProviderConfig
	byEndpoint    map[string]ResourceType
	resourceTypes []ResourceType
}

// NewRegistry builds an empty Registry with the given configuration.
func NewRegistry(config spconfig.ServiceProviderConfig) *Registry {
	return &Registry{config: config, byEndpoint: map[string]ResourceType{}}
}

// Register adds rt, keyed by its Endpoint. Panics (a usage error) on a
// duplicate endpoint.
func (r *Registry) Register(rt ResourceType) {
	if _, exists := r.byEndpoint[rt.Endpoint]; exists {
		panic("scim: duplicate resource type endpoint " + rt.Endpoint)
	}
	r.byEndpoint[rt.Endpoint] = rt
	r.resourceTypes = append(r.resourceTypes, rt)
}

// Lookup finds a registered ResourceType by endpoint ("/Users").
func (r *Registry) Lookup(endpoint string) (ResourceType, bool) {
	rt, ok := r.byEndpoint[endpoint]
	return rt, ok
}

// ResourceTypes returns every registered ResourceType in registration
// order.
func (r *Registry) ResourceTypes() []ResourceType {
	return append([]ResourceType(nil), r.resourceTypes...)
}

// Config returns the registry's service-provider configuration.
func (r *Registry) Config() spconfig.ServiceProviderConfig {
	return r.config
}

// ValidateResourceType reports code 31 ("resource type not supported",
// spec §4.J) if name does not match any registered ResourceType's Name
// — the check a /ResourceTypes lookup or a bulk/crud request naming a
// resource type by value (rather than by endpoint) must make.
func (r *Registry) ValidateResourceType(name string) *issues.Issues {
	out := issues.New()
	for _, rt := range r.resourceTypes {
		if rt.Name == name {
			return out
		}
	}
	out.AddError(issues.ValueNotSupported, issues.Location{"body", "meta", "resourceType"})
	return out
}

// Validators returns the full set of per-endpoint validators for rt,
// composed against the registry's configuration (spec §4.J).
func (r *Registry) Validators(rt ResourceType) Validators {
	res := validator.Resource{Schema: rt.Schema, Config: r.config}
	return Validators{
		Get:     validator.ResourceObjectGet{Resource: res},
		Post:    validator.ResourcesPost{Resource: res},
		Put:     validator.ResourceObjectPut{Resource: res},
		Patch:   validator.ResourceObjectPatch{Resource: res},
		Delete:  validator.ResourceObjectDelete{Resource: res},
		Query:   validator.ResourcesQuery{Resource: res},
		Search:  validator.SearchRequestPost{Resource: res},
	}
}

// Validators bundles one ResourceType's full set of endpoint validators.
type Validators struct {
	Get    validator.ResourceObjectGet
	Post   validator.ResourcesPost
	Put    validator.ResourceObjectPut
	Patch  validator.ResourceObjectPatch
	Delete validator.ResourceObjectDelete
	Query  validator.ResourcesQuery
	Search validator.SearchRequestPost
}
