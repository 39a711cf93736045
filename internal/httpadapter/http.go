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

// Package httpadapter adapts *net/http.Request and *net/http.Response
// to the oasconform.Request/oasconform.Response interfaces
// so callers using the standard library never write their own
// adapter.
package httpadapter

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
)

// Request wraps an *http.Request, buffering its body so it can be read
// once by the validator and still be available to the caller's own
// handler afterward.
type Request struct {
	req  *http.Request
	body []byte
	read bool
}

// NewRequest reads r.Body fully (replacing it with a fresh reader over
// the buffered bytes, so the caller's own handler can still read it) and
// returns an adapter over the result.
func NewRequest(r *http.Request) (*Request, error) {
	a := &Request{req: r}
	if r.Body != nil && r.Body != http.NoBody {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(b))
		a.body = b
		a.read = true
	}
	return a, nil
}

func (a *Request) Method() string  { return a.req.Method }
func (a *Request) URI() *url.URL   { return a.req.URL }
func (a *Request) Host() string    { return a.req.Host }

func (a *Request) Header(name string) (string, bool) {
	vs, ok := a.req.Header[http.CanonicalHeaderKey(name)]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func (a *Request) Headers() [][2]string {
	out := make([][2]string, 0, len(a.req.Header))
	for name, vs := range a.req.Header {
		for _, v := range vs {
			out = append(out, [2]string{name, v})
		}
	}
	return out
}

func (a *Request) Body() ([]byte, bool) {
	return a.body, a.read
}

// Response wraps an *http.Response analogously to Request.
type Response struct {
	resp *http.Response
	body []byte
	read bool
}

// NewResponse reads resp.Body fully and replaces it with a fresh reader,
// mirroring NewRequest.
func NewResponse(resp *http.Response) (*Response, error) {
	a := &Response{resp: resp}
	if resp.Body != nil {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(b))
		a.body = b
		a.read = true
	}
	return a, nil
}

func (a *Response) Status() int { return a.resp.StatusCode }

func (a *Response) Header(name string) (string, bool) {
	vs, ok := a.resp.Header[http.CanonicalHeaderKey(name)]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func (a *Response) Headers() [][2]string {
	out := make([][2]string, 0, len(a.resp.Header))
	for name, vs := range a.resp.Header {
		for _, v := range vs {
			out = append(out, [2]string{name, v})
		}
	}
	return out
}

func (a *Response) Body() ([]byte, bool) {
	return a.body, a.read
}
