// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Arista Networks, Inc. Confidential and Proprietary.

// Package testdiff is the shared test-assertion helper for this module's
// package tests: a thin wrapper around godebug/pretty so structural
// comparisons print a readable diff instead of a raw %#v dump.
package testdiff

import "github.com/kylelemons/godebug/pretty"

// Diff returns a human-readable difference between got and want. An
// empty string means they are equal.
func Diff(got, want interface{}) string {
	return pretty.Compare(got, want)
}
