// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/taibuivan/grimoire/internal/platform/constants"
)

// errNoCollection is returned when an object response has none of the
// expected collection keys.
var errNoCollection = errors.New("no collection key in response")

// unwrapKeys returns the keys a collection may be nested under, in lookup order.
func unwrapKeys(collection string) []string {
	return []string{constants.FieldData, collection, constants.FieldItems, constants.FieldResults}
}

// unwrap decodes body into records. body may be a bare array or an object
// holding the array under the first present key of keys. A present key with
// a null value counts as an empty collection.
func unwrap[R any](body []byte, keys []string) ([]R, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty response body")
	}

	if body[0] == '[' {
		return decodeRecords[R](body)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	for _, key := range keys {
		nested, ok := envelope[key]
		if !ok {
			continue
		}
		if bytes.Equal(bytes.TrimSpace(nested), []byte("null")) {
			return []R{}, nil
		}
		return decodeRecords[R](nested)
	}

	return nil, fmt.Errorf("%w (want one of %s)", errNoCollection, strings.Join(keys, ", "))
}

// decodeRecords decodes each element on its own so one malformed element
// is skipped instead of discarding the whole collection.
func decodeRecords[R any](array []byte) ([]R, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(array, &elements); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}

	records := make([]R, 0, len(elements))
	for _, element := range elements {
		var record R
		if err := json.Unmarshal(element, &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
