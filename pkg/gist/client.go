package gist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/logging"
)

// Client is a thin HTTP client for the snippet store API. It performs no
// retries and sets no timeouts of its own; retry and backoff policy belong
// to the caller, and timeouts to the injected http.Client.
type Client struct {
	baseURL    string
	collection string
	token      string
	httpClient *http.Client
}

// NewClient creates an API client. httpClient may be nil, in which case
// http.DefaultClient is used.
func NewClient(baseURL, collection, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		collection: collection,
		token:      token,
		httpClient: httpClient,
	}
}

// apiError is the backend's error body; its message is surfaced for
// validation failures.
type apiError struct {
	Message string `json:"message"`
}

// do issues one request and decodes a successful JSON response into out.
// Failures are classified into the semantic error taxonomy.
func (c *Client) do(method, url string, body interface{}, out interface{}) error {
	logger := logging.GetLogger("gist.client")

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger.Trace().Str("method", method).Str("url", url).Msg("Remote request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response received at all
		return errors.Wrap(err, errors.ErrRemoteUnavailable, "no response from remote store")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return classifyStatus(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, errors.ErrRemoteUnknown, "failed to decode remote response")
		}
	}
	return nil
}

// classifyStatus maps a transport status code to its semantic category.
func classifyStatus(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var backend apiError
	_ = json.Unmarshal(data, &backend)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.New(errors.ErrRemoteUnauthorized, "remote store rejected the access token")
	case http.StatusForbidden:
		return errors.New(errors.ErrRemoteForbidden, "remote store denied access")
	case http.StatusNotFound:
		return errors.New(errors.ErrRemoteNotFound, "remote record not found")
	case http.StatusUnprocessableEntity:
		msg := "remote store rejected the payload"
		if backend.Message != "" {
			msg = fmt.Sprintf("%s: %s", msg, backend.Message)
		}
		return errors.New(errors.ErrRemoteInvalidPayload, msg)
	case http.StatusTooManyRequests:
		return errors.New(errors.ErrRemoteRateLimited, "remote store is rate limiting requests")
	default:
		return errors.Newf(errors.ErrRemoteUnknown, "remote store returned status %d", resp.StatusCode)
	}
}

// collectionURL returns the collection endpoint, optionally with an id.
func (c *Client) collectionURL(id string) string {
	url := c.baseURL + "/" + c.collection
	if id != "" {
		url += "/" + id
	}
	return url
}

// fetchRaw retrieves raw file content from a content URL. The transport may
// serve the payload as text or as JSON depending on content negotiation;
// the caller deals with both.
func (c *Client) fetchRaw(rawURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to build request")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRemoteUnavailable, "no response from remote store")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, classifyStatus(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRemoteUnknown, "failed to read remote content")
	}
	return data, nil
}
