// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-style query parameters.
package query

import "strings"

// StringSlice splits a comma-separated value into trimmed, non-empty parts.
//
//	StringSlice(" spells, ,feats") // ["spells", "feats"]
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}

	var parts []string
	for _, v := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(v); clean != "" {
			parts = append(parts, clean)
		}
	}
	return parts
}
