package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type call struct {
	Method string
	Path   string
	Body   string
}

// fakeClient implements client.Client. Responses are keyed by "METHOD path"
// and decoded into out the way the HTTP adapter would.
type fakeClient struct {
	calls     []call
	responses map[string]string
	errs      map[string]error
}

func newFakeClient() *fakeClient {
	return &fakeClient{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeClient) on(method, path, body string) *fakeClient {
	f.responses[method+" "+path] = body
	return f
}

func (f *fakeClient) fail(method, path string, err error) *fakeClient {
	f.errs[method+" "+path] = err
	return f
}

func (f *fakeClient) do(method, path string, in, out any) error {
	c := call{Method: method, Path: path}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		c.Body = string(b)
	}
	f.calls = append(f.calls, c)

	key := method + " " + path
	if err, ok := f.errs[key]; ok {
		return err
	}
	if out == nil {
		return nil
	}
	body, ok := f.responses[key]
	if !ok {
		return fmt.Errorf("unexpected call %s", key)
	}
	return json.Unmarshal([]byte(body), out)
}

func (f *fakeClient) Get(_ context.Context, path string, out any) error {
	return f.do(http.MethodGet, path, nil, out)
}

func (f *fakeClient) Post(_ context.Context, path string, in, out any) error {
	return f.do(http.MethodPost, path, in, out)
}

func (f *fakeClient) Put(_ context.Context, path string, in, out any) error {
	return f.do(http.MethodPut, path, in, out)
}

func (f *fakeClient) Patch(_ context.Context, path string, in, out any) error {
	return f.do(http.MethodPatch, path, in, out)
}

func (f *fakeClient) Delete(_ context.Context, path string) error {
	return f.do(http.MethodDelete, path, nil, nil)
}
