// Package core bundles the business logic of the event backend into
// stand-alone funcs constructed over services.
package core

// NamespaceDefault is used for all single-tenant deployments.
const NamespaceDefault = "omorgan"
