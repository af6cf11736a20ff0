// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuid generates the time-ordered identifiers used as catalog primary keys.
//
// Version 7 values sort by creation time, which keeps the B-tree on each
// catalog table append-only.
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string. It panics only if the entropy source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}
