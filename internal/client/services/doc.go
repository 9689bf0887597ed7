// Package services wraps the REST endpoints of the EHR API. Each service is a
// flat set of calls that map one to one onto endpoints: inputs are validated
// locally, failures are logged and returned unchanged, and nothing is cached.
package services
