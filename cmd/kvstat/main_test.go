// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import "testing"

func TestSplitPair(t *testing.T) {
	tests := []struct {
		line      string
		wantKey   string
		wantValue string
	}{
		{"a=1", "a", "1"},
		{"a", "a", ""},
		{"a=b=c", "a", "b=c"},
	}
	for _, tc := range tests {
		k, v := splitPair(tc.line)
		if k != tc.wantKey || v != tc.wantValue {
			t.Errorf("splitPair(%q) = (%q, %q), want (%q, %q)", tc.line, k, v, tc.wantKey, tc.wantValue)
		}
	}
}
