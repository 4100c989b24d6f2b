// Package server exposes profile ingestion and the streaming chat
// endpoint over HTTP.
package server
