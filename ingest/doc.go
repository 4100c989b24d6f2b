// Package ingest turns instructor profiles into vector index entries.
//
// The Ingestor embeds a profile's tag summary and upserts the vector
// together with the full profile as metadata. Ingestion is
// all-or-nothing per record and idempotent: re-ingesting an instructor
// replaces the prior entry. IngestAll runs a batch concurrently with
// per-record retry and backoff.
package ingest
