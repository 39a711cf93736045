// Copyright 2025 The Rivaas Authors
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

package oasconform

import "net/url"

// Request is the minimal capability set a request must offer, so the
// engine never depends on any one concrete request type. Adapters for
// concrete HTTP stacks need only implement this — see the httpadapter
// subpackage for a ready-made *http.Request adapter.
type Request interface {
	Method() string
	URI() *url.URL
	Header(name string) (value string, ok bool)
	Headers() [][2]string
	Body() ([]byte, bool)
	Host() string
}

// Response is the minimal capability set a response must offer.
type Response interface {
	Status() int
	Header(name string) (value string, ok bool)
	Headers() [][2]string
	Body() ([]byte, bool)
}
