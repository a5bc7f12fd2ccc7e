// Package identity verifies identity provider ID tokens for the users app service.
package identity
