package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/tmchartrand/synceverything/pkg/types"
)

// GistServer is an httptest-backed fake of the remote snippet store API.
// It implements the list, get, create, patch, and raw-content endpoints
// with the same wire shapes the real backend uses.
type GistServer struct {
	mu      sync.Mutex
	srv     *httptest.Server
	records map[string]*types.MasterRecord
	nextID  int

	// RequireToken rejects requests without this bearer token when set.
	RequireToken string

	// ForceStatus short-circuits every request with the given status.
	ForceStatus int

	// Requests records "METHOD path" for each call, in order.
	Requests []string

	// PatchBodies records the raw body of each PATCH request, in order.
	PatchBodies []string
}

// NewGistServer starts a fake snippet store.
func NewGistServer() *GistServer {
	g := &GistServer{
		records: make(map[string]*types.MasterRecord),
		nextID:  1,
	}
	g.srv = httptest.NewServer(http.HandlerFunc(g.handle))
	return g
}

// URL returns the server's base URL.
func (g *GistServer) URL() string { return g.srv.URL }

// Close shuts the server down.
func (g *GistServer) Close() { g.srv.Close() }

// Seed installs a record directly, assigning raw URLs for its files.
func (g *GistServer) Seed(rec *types.MasterRecord) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if rec.ID == "" {
		rec.ID = g.allocID()
	}
	g.assignRawURLs(rec)
	g.records[rec.ID] = rec
}

// Record returns a stored record by id, or nil.
func (g *GistServer) Record(id string) *types.MasterRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.records[id]
}

// DeleteRecord removes a record, simulating external deletion.
func (g *GistServer) DeleteRecord(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.records, id)
}

func (g *GistServer) allocID() string {
	id := fmt.Sprintf("gist%04d", g.nextID)
	g.nextID++
	return id
}

func (g *GistServer) assignRawURLs(rec *types.MasterRecord) {
	for name, f := range rec.Files {
		f.RawURL = g.srv.URL + "/raw/" + rec.ID + "/" + name
		rec.Files[name] = f
	}
}

func (g *GistServer) handle(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Requests = append(g.Requests, r.Method+" "+r.URL.Path)

	if g.ForceStatus != 0 {
		http.Error(w, `{"message":"forced"}`, g.ForceStatus)
		return
	}

	if g.RequireToken != "" {
		if r.Header.Get("Authorization") != "Bearer "+g.RequireToken {
			http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
			return
		}
	}

	switch {
	case strings.HasPrefix(r.URL.Path, "/raw/"):
		g.handleRaw(w, r)
	case r.URL.Path == "/gists" && r.Method == http.MethodGet:
		g.handleList(w)
	case r.URL.Path == "/gists" && r.Method == http.MethodPost:
		g.handleCreate(w, r)
	case strings.HasPrefix(r.URL.Path, "/gists/") && r.Method == http.MethodGet:
		g.handleGet(w, strings.TrimPrefix(r.URL.Path, "/gists/"))
	case strings.HasPrefix(r.URL.Path, "/gists/") && r.Method == http.MethodPatch:
		g.handlePatch(w, r, strings.TrimPrefix(r.URL.Path, "/gists/"))
	default:
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}
}

func (g *GistServer) handleRaw(w http.ResponseWriter, r *http.Request) {
	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/raw/"), "/", 2)
	if len(parts) != 2 {
		http.Error(w, "bad raw path", http.StatusNotFound)
		return
	}
	rec, ok := g.records[parts[0]]
	if !ok {
		http.Error(w, "gone", http.StatusNotFound)
		return
	}
	f, ok := rec.Files[parts[1]]
	if !ok {
		http.Error(w, "no such file", http.StatusNotFound)
		return
	}
	fmt.Fprint(w, f.Content)
}

// handleList omits file contents, as the real list endpoint does.
func (g *GistServer) handleList(w http.ResponseWriter) {
	list := make([]*types.MasterRecord, 0, len(g.records))
	for _, rec := range g.records {
		stripped := &types.MasterRecord{
			ID:          rec.ID,
			Description: rec.Description,
			Public:      rec.Public,
			Files:       make(map[string]types.RecordFile, len(rec.Files)),
		}
		for name, f := range rec.Files {
			stripped.Files[name] = types.RecordFile{RawURL: f.RawURL}
		}
		list = append(list, stripped)
	}
	writeJSON(w, http.StatusOK, list)
}

func (g *GistServer) handleGet(w http.ResponseWriter, id string) {
	rec, ok := g.records[id]
	if !ok {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (g *GistServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Description string                      `json:"description"`
		Public      bool                        `json:"public"`
		Files       map[string]types.RecordFile `json:"files"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"message":"Problems parsing JSON"}`, http.StatusUnprocessableEntity)
		return
	}
	if len(body.Files) == 0 {
		http.Error(w, `{"message":"Validation Failed: files missing"}`, http.StatusUnprocessableEntity)
		return
	}

	rec := &types.MasterRecord{
		ID:          g.allocID(),
		Description: body.Description,
		Public:      body.Public,
		Files:       body.Files,
	}
	g.assignRawURLs(rec)
	g.records[rec.ID] = rec
	writeJSON(w, http.StatusCreated, rec)
}

// handlePatch merges the files map. The backend distinguishes a missing
// content key (entry left unchanged) from an explicit empty string (entry
// removed), so the fake decodes content as a pointer to tell them apart.
func (g *GistServer) handlePatch(w http.ResponseWriter, r *http.Request, id string) {
	rec, ok := g.records[id]
	if !ok {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, `{"message":"Problems parsing JSON"}`, http.StatusUnprocessableEntity)
		return
	}
	g.PatchBodies = append(g.PatchBodies, string(raw))

	var body struct {
		Files map[string]struct {
			Content *string `json:"content"`
			RawURL  string  `json:"raw_url"`
		} `json:"files"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		http.Error(w, `{"message":"Problems parsing JSON"}`, http.StatusUnprocessableEntity)
		return
	}

	for name, f := range body.Files {
		if f.Content == nil {
			continue
		}
		if *f.Content == "" {
			delete(rec.Files, name)
			continue
		}
		rec.Files[name] = types.RecordFile{Content: *f.Content}
	}
	g.assignRawURLs(rec)
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
