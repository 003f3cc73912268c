package urlstate

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/ohler55/ojg/oj"
	"github.com/ulikunitz/xz"
)

// Compact link format: the state is marshalled to a short-key JSON object,
// xz-compressed and base64url-encoded into a single q parameter. Long
// selections compress well, keeping shared links short.

// EncodeCompact packs the state into the value of the q parameter.
func EncodeCompact(s State) (string, error) {
	payload := map[string]any{}
	if s.Search != "" {
		payload["s"] = s.Search
	}
	if len(s.Columns) > 0 {
		cols := map[string]any{}
		for name, vals := range s.Columns {
			cols[name] = vals
		}
		payload["c"] = cols
	}
	if s.Page > 1 {
		payload["p"] = s.Page
	}

	raw := oj.JSON(payload)

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := w.Write([]byte(raw)); err != nil {
		return "", fmt.Errorf("failed to compress state: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finish compression: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// EncodeCompactURL builds a full shareable URL using the compact format.
func EncodeCompactURL(base string, s State) (string, error) {
	q, err := EncodeCompact(s)
	if err != nil {
		return "", err
	}
	return base + "?q=" + q, nil
}

// DecodeCompact unpacks a q parameter value produced by EncodeCompact.
func DecodeCompact(enc string) (State, error) {
	s := State{Columns: make(map[string][]string), Page: 1}

	compressed, err := base64.RawURLEncoding.DecodeString(enc)
	if err != nil {
		return s, fmt.Errorf("failed to decode state parameter: %w", err)
	}

	r, err := xz.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return s, fmt.Errorf("failed to open compressed state: %w", err)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return s, fmt.Errorf("failed to decompress state: %w", err)
	}

	parsed, err := oj.Parse(raw)
	if err != nil {
		return s, fmt.Errorf("failed to parse state: %w", err)
	}
	payload, ok := parsed.(map[string]any)
	if !ok {
		return s, fmt.Errorf("unexpected state payload type %T", parsed)
	}

	if v, ok := payload["s"].(string); ok {
		s.Search = v
	}
	if cols, ok := payload["c"].(map[string]any); ok {
		for name, raw := range cols {
			list, ok := raw.([]any)
			if !ok {
				continue
			}
			for _, item := range list {
				if v, ok := item.(string); ok {
					s.Columns[name] = append(s.Columns[name], v)
				}
			}
		}
	}
	if p, ok := payload["p"].(int64); ok && p >= 1 {
		s.Page = int(p)
	}

	return s, nil
}
