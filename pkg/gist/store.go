package gist

import (
	"net/http"

	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/logging"
	"github.com/tmchartrand/synceverything/pkg/profile"
	"github.com/tmchartrand/synceverything/pkg/state"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// store implements the ProfileStore interface.
type store struct {
	client *Client
	cache  types.StateStore
}

// filePatch is the wire form of one file entry in create and patch bodies.
// Content carries no omitempty: an explicit `"content": ""` is the backend's
// file-removal signal and must survive marshalling, while a missing key
// means "leave the entry unchanged".
type filePatch struct {
	Content string `json:"content"`
}

// New creates a ProfileStore talking to the snippet store API at baseURL.
// The cache is used only for the master record id. httpClient may be nil.
func New(baseURL, collection, token string, cache types.StateStore, httpClient *http.Client) ProfileStore {
	return &store{
		client: NewClient(baseURL, collection, token, httpClient),
		cache:  cache,
	}
}

// FindMaster implements ProfileStore.FindMaster.
func (s *store) FindMaster() (*types.MasterRecord, error) {
	logger := logging.GetLogger("gist")

	// Fast path: fetch by the cached id
	if id, ok := s.cache.Get(state.KeyMasterID); ok && id != "" {
		var rec types.MasterRecord
		err := s.client.do(http.MethodGet, s.client.collectionURL(id), nil, &rec)
		if err == nil {
			return &rec, nil
		}
		if !errors.IsErrorCode(err, errors.ErrRemoteNotFound) {
			return nil, err
		}
		// The cached id is stale (record deleted or recreated externally);
		// fall through to a full collection scan.
		logger.Info().Str("id", id).Msg("Cached master id is stale, scanning collection")
	}

	var records []types.MasterRecord
	if err := s.client.do(http.MethodGet, s.client.collectionURL(""), nil, &records); err != nil {
		return nil, err
	}

	// First match wins; duplicates are not deduplicated or merged.
	for i := range records {
		if records[i].Description != types.MasterDescription {
			continue
		}
		rec := records[i]
		if err := s.cache.Set(state.KeyMasterID, rec.ID); err != nil {
			return nil, err
		}
		logger.Debug().Str("id", rec.ID).Msg("Master record located by description scan")
		return &rec, nil
	}

	return nil, errors.New(errors.ErrNotFound, "no master record found in the collection")
}

// FindOrNil wraps FindMaster, mapping the not-found case to a nil record so
// callers that create lazily do not have to match on the error code.
func FindOrNil(ps ProfileStore) (*types.MasterRecord, error) {
	rec, err := ps.FindMaster()
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// CreateMaster implements ProfileStore.CreateMaster.
func (s *store) CreateMaster(p types.Profile) (*types.MasterRecord, error) {
	logger := logging.GetLogger("gist")

	content, err := profile.Encode(p)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"description": types.MasterDescription,
		"public":      false,
		"files": map[string]filePatch{
			p.FileName(): {Content: content},
		},
	}

	var rec types.MasterRecord
	if err := s.client.do(http.MethodPost, s.client.collectionURL(""), body, &rec); err != nil {
		return nil, err
	}

	if err := s.cache.Set(state.KeyMasterID, rec.ID); err != nil {
		return nil, err
	}

	logger.Info().Str("id", rec.ID).Str("profile", p.Name).Msg("Master record created")
	return &rec, nil
}

// FetchProfile implements ProfileStore.FetchProfile.
func (s *store) FetchProfile(name string, file types.RecordFile) (types.Profile, error) {
	if file.Content != "" {
		return profile.Decode(name, []byte(file.Content))
	}

	if file.RawURL == "" {
		return types.Profile{}, errors.Newf(errors.ErrInvalidInput,
			"profile %s has neither inline content nor a content URL", name)
	}

	data, err := s.client.fetchRaw(file.RawURL)
	if err != nil {
		return types.Profile{}, err
	}
	return profile.Decode(name, data)
}

// UpsertProfile implements ProfileStore.UpsertProfile.
func (s *store) UpsertProfile(p types.Profile) (*types.MasterRecord, error) {
	id, err := s.establishedID()
	if err != nil {
		return nil, err
	}

	content, err := profile.Encode(p)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"files": map[string]filePatch{
			p.FileName(): {Content: content},
		},
	}

	var rec types.MasterRecord
	if err := s.client.do(http.MethodPatch, s.client.collectionURL(id), body, &rec); err != nil {
		return nil, err
	}

	logger := logging.GetLogger("gist")
	logger.Info().
		Str("id", rec.ID).
		Str("profile", p.Name).
		Msg("Profile upserted")
	return &rec, nil
}

// DeleteProfile implements ProfileStore.DeleteProfile. Setting a file's
// content to the empty string is this backend's removal convention for
// files inside a multi-file record; it stays an implementation detail of
// this package.
func (s *store) DeleteProfile(name string) error {
	id, err := s.establishedID()
	if err != nil {
		return err
	}

	body := map[string]interface{}{
		"files": map[string]filePatch{
			name + ".json": {Content: ""},
		},
	}

	if err := s.client.do(http.MethodPatch, s.client.collectionURL(id), body, nil); err != nil {
		return err
	}

	logger := logging.GetLogger("gist")
	logger.Info().Str("profile", name).Msg("Profile deleted")
	return nil
}

// establishedID returns the cached master id, or a precondition violation
// when none has been established yet.
func (s *store) establishedID() (string, error) {
	id, ok := s.cache.Get(state.KeyMasterID)
	if !ok || id == "" {
		return "", errors.New(errors.ErrPrecondition,
			"no master record id established; run a find or create first")
	}
	return id, nil
}
