// ABOUTME: Package documentation for the config package
// ABOUTME: Describes configuration structure and loading behavior

// Package config handles client configuration for the iamessage client.
//
// # Overview
//
// Configuration identifies the remote deployment (base URL, organization
// id, embedded-service developer name) plus optional request tuning.
// It can be constructed directly or loaded from a YAML file:
//
//	cfg, err := config.Load("client.yaml")
//
// # Features
//
//   - Environment variable expansion: ${VAR_NAME} in the YAML is replaced
//     with the environment value before parsing
//   - Duration parsing: request_timeout accepts Go duration strings ("30s")
//   - Validation: required fields are checked on load; Validate can also be
//     called on directly-constructed configs
//
// # Example
//
//	base_url: https://example.my.salesforce-scrt.com
//	org_id: 00Dxx0000000001
//	developer_name: Embedded_Messaging
//	request_timeout: 30s
//	logging:
//	  level: info
//	  format: text
package config
