// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package derive

import (
	"fmt"
	"reflect"
	"strings"
)

const tagName = "digest"

type fieldOptions struct {
	name     string
	skip     bool
	optional bool
	fixed64  bool
	sorted   bool
	with     string
}

func parseFieldTag(field reflect.StructField) (fieldOptions, error) {
	ret := fieldOptions{name: field.Name}
	tag, ok := field.Tag.Lookup(tagName)
	if !ok {
		return ret, nil
	}
	if tag == "-" {
		ret.skip = true
		return ret, nil
	}
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		ret.name = parts[0]
	}
	for _, part := range parts[1:] {
		switch part {
		case "optional":
			ret.optional = true
		case "fixed64":
			ret.fixed64 = true
		case "sorted":
			ret.sorted = true
		default:
			if name, ok := strings.CutPrefix(part, "with="); ok && name != "" {
				ret.with = name
				continue
			}
			return ret, fmt.Errorf("%w: %q", ErrInvalidOption, part)
		}
	}
	if ret.with != "" && (ret.sorted || ret.fixed64) {
		return ret, fmt.Errorf("%w: with cannot be combined with sorted or fixed64", ErrInvalidOption)
	}
	return ret, nil
}
