// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package localstore provides durable key/value storage for client-side
// state. SQLite keeps blobs in a local file; Memory is for tests.
package localstore
