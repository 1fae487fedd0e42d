// Package scim ties the library's pieces together: a ResourceType pairs
// a ResourceSchema with the endpoint, service-provider configuration,
// and presence rules a validator needs to check one kind of resource.
package scim
