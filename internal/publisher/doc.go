// Package publisher uploads built archives to a publication endpoint.
package publisher
