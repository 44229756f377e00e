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

package canon

import (
	"errors"
	"fmt"
)

// Contract violations. These are raised with panic, never returned.
var (
	ErrSlotReused         = errors.New("canon: slot already received a value")
	ErrSlotFinalized      = errors.New("canon: slot already finalized")
	ErrLengthOverflow     = errors.New("canon: length exceeds 32-bit length field")
	ErrInvalidText        = errors.New("canon: text is not valid UTF-8")
	ErrTagAlreadySet      = errors.New("canon: domain tag already set")
	ErrMapValueWithoutKey = errors.New("canon: map value requested without a pending key")
	ErrNilValue           = errors.New("canon: nil value")
)

// SinkError wraps an error returned by the underlying Sink. Hash sinks never
// fail, so this only shows up with general purpose writers.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("canon: sink write failed: %s", e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
