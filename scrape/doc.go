// Package scrape defines the collaborator contract for turning review
// page URLs into instructor profiles.
package scrape
