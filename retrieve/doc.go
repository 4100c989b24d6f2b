// Package retrieve maps a user query to the instructor profiles most
// likely to answer it, using the same embedding space the profiles were
// ingested into.
package retrieve
