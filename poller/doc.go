// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package poller runs a refresh function periodically on a single
// goroutine. Because every call, scheduled or triggered, runs on that one
// goroutine, a slow response can never be overwritten by an older one.
package poller
