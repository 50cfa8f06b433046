package profile

import (
	"bytes"
	"encoding/json"

	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// payload is the wire form of a profile inside a master record file entry.
// The profile name is carried by the file name, not duplicated here.
type payload struct {
	Settings    json.RawMessage `json:"settings,omitempty"`
	Keybindings json.RawMessage `json:"keybindings,omitempty"`
	Extensions  []string        `json:"extensions"`
}

// Encode serializes a profile into the stored file content.
func Encode(p types.Profile) (string, error) {
	body := payload{
		Settings:    p.Settings,
		Keybindings: p.Keybindings,
		Extensions:  p.Extensions,
	}
	if body.Extensions == nil {
		body.Extensions = []string{}
	}

	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to encode profile %s", p.Name)
	}
	return string(data), nil
}

// Decode parses stored file content back into a profile. The transport may
// hand the payload over as JSON or as a JSON-encoded string wrapping it, so
// both forms are accepted.
func Decode(name string, data []byte) (types.Profile, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return types.Profile{}, errors.Newf(errors.ErrInvalidInput, "profile %s has empty content", name)
	}

	// Double-encoded payloads start with a quote: unwrap the string first.
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return types.Profile{}, errors.Wrapf(err, errors.ErrInvalidInput,
				"profile %s content is not valid JSON", name)
		}
		trimmed = []byte(inner)
	}

	var body payload
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return types.Profile{}, errors.Wrapf(err, errors.ErrInvalidInput,
			"profile %s content is not valid JSON", name)
	}

	return types.Profile{
		Name:        name,
		Settings:    body.Settings,
		Keybindings: body.Keybindings,
		Extensions:  body.Extensions,
	}, nil
}

// NormalizeFileContent converts the text of a local configuration file into
// its profile field representation: valid JSON passes through untouched,
// anything else (comments, trailing commas) is carried verbatim as a JSON
// string.
func NormalizeFileContent(text []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(text)
	if json.Valid(trimmed) {
		out := make(json.RawMessage, len(trimmed))
		copy(out, trimmed)
		return out
	}
	quoted, err := json.Marshal(string(text))
	if err != nil {
		// Marshalling a string cannot fail on valid UTF-8; fall back to null
		return json.RawMessage("null")
	}
	return quoted
}

// RenderFileContent converts a profile field back into local file text:
// a JSON string is written verbatim, any other JSON value is pretty-printed.
func RenderFileContent(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", errors.New(errors.ErrInvalidInput, "no content to write")
	}

	if trimmed[0] == '"' {
		var verbatim string
		if err := json.Unmarshal(trimmed, &verbatim); err != nil {
			return "", errors.Wrap(err, errors.ErrInvalidInput, "malformed string content")
		}
		return verbatim, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "malformed JSON content")
	}
	return buf.String(), nil
}
