// Package gist implements the remote profile store against a
// GitHub-Gist-shaped snippet store API.
//
// One master record, discovered by its fixed description string, holds all
// profiles as named JSON files. The package classifies transport failures
// into the semantic error categories defined in pkg/errors and never
// retries; backoff policy belongs to the caller.
//
// Wire surface:
//
//	GET    /{collection}        list records (file entries carry raw_url only)
//	GET    /{collection}/{id}   one record with inline content
//	POST   /{collection}        create the master record
//	PATCH  /{collection}/{id}   upsert file entries; empty content removes one
//	GET    {raw_url}            raw file content
package gist
