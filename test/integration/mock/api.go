package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

type receivedRequest struct {
	body    map[string]any
	headers map[string]string
}

type cannedResponse struct {
	status int
	body   any
}

// ApiMock is an HTTP server that records requests per method and path and
// replies with configured responses. Paths may use "*" for one segment.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	received  map[string][]receivedRequest
	responses map[string]map[int]cannedResponse
	defaults  map[string]cannedResponse
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		received:  map[string][]receivedRequest{},
		responses: map[string]map[int]cannedResponse{},
		defaults:  map[string]cannedResponse{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	if a.server == nil {
		return ""
	}
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	request := map[string]any{}
	_ = json.Unmarshal(body, &request)

	headers := map[string]string{}
	for key, value := range r.Header {
		headers[key] = value[0]
	}

	a.mu.Lock()
	key := r.Method + r.URL.Path
	index := len(a.received[key])
	a.received[key] = append(a.received[key], receivedRequest{body: request, headers: headers})
	response := a.responseFor(r.Method, r.URL.Path, index)
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.status)
	raw, _ := json.Marshal(response.body)
	_, _ = w.Write(raw)
}

// SetResponse configures the reply to the index-th call; index -1 sets the
// reply for every call without a specific one.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	canned := cannedResponse{status: status, body: response}
	if index == -1 {
		a.defaults[method+path] = canned
		return
	}
	if a.responses[method+path] == nil {
		a.responses[method+path] = map[int]cannedResponse{}
	}
	a.responses[method+path][index] = canned
}

// RequestCount returns how many calls matched method and path.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.received[method+path])
}

func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	requests := a.received[method+path]
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index].body
}

func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	requests := a.received[method+path]
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index].headers
}

// Reset forgets recorded calls and configured responses.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.received = map[string][]receivedRequest{}
	a.responses = map[string]map[int]cannedResponse{}
	a.defaults = map[string]cannedResponse{}
}

func (a *ApiMock) responseFor(method, path string, index int) cannedResponse {
	if key := a.findMatchingKey(method, path, a.responseKeys()); key != "" {
		if response, ok := a.responses[key][index]; ok {
			return response
		}
	}
	if key := a.findMatchingKey(method, path, a.defaultKeys()); key != "" {
		return a.defaults[key]
	}
	return cannedResponse{status: http.StatusOK, body: map[string]any{}}
}

func (a *ApiMock) responseKeys() []string {
	keys := make([]string, 0, len(a.responses))
	for key := range a.responses {
		keys = append(keys, key)
	}
	return keys
}

func (a *ApiMock) defaultKeys() []string {
	keys := make([]string, 0, len(a.defaults))
	for key := range a.defaults {
		keys = append(keys, key)
	}
	return keys
}

func (a *ApiMock) findMatchingKey(method, path string, keys []string) string {
	exactKey := method + path
	for _, key := range keys {
		if key == exactKey {
			return key
		}
	}
	for _, key := range keys {
		if strings.HasPrefix(key, method) && matchPath(strings.TrimPrefix(key, method), path) {
			return key
		}
	}
	return ""
}

func matchPath(pattern, path string) bool {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != pathParts[i] {
			return false
		}
	}
	return true
}
