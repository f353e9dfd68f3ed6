// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts the time operations used by the reload
// throttle and the action poller so tests can drive them
// deterministically.
//
// Production code takes a [Clock] and is handed [Real]. Tests hand it a
// [FakeClock], register work, and move time with [FakeClock.Advance].
// [FakeClock.WaitForTimers] closes the race between a goroutine
// creating a ticker and the test advancing past its first deadline.
package clock
