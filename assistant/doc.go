// Package assistant orchestrates the query path: retrieval, prompt
// assembly, and streamed generation for one conversation turn.
package assistant
