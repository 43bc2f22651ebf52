// Package store persists the user's saved application list.
//
// The store is one pretty-printed JSON document:
//
//	{"apps": [...], "lastUpdated": "...", "version": "1.0.0"}
//
// It is created lazily on first access and rewritten in full on every
// mutation through a temp-file-and-rename, so an interrupted write leaves the
// previous document intact. Reads never fail: a missing or corrupt file
// degrades to an empty document. Writes return an error the caller must check.
//
// A Store serializes its own operations with a mutex. It does not lock the
// file, so two processes sharing a path can still lose updates.
package store
