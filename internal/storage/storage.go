// Package storage provides the external object store used for image
// persistence.
package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// ObjectStore persists binary objects and returns a durable public URL for
// each stored object.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// DecodePayload turns a client-supplied image payload into raw bytes and a
// content type. Accepted forms are a data URI ("data:image/png;base64,...")
// or a bare base64 string.
func DecodePayload(payload string) ([]byte, string, error) {
	contentType := "application/octet-stream"
	encoded := payload

	if strings.HasPrefix(payload, "data:") {
		rest := strings.TrimPrefix(payload, "data:")
		semi := strings.Index(rest, ";base64,")
		if semi < 0 {
			return nil, "", fmt.Errorf("unsupported data URI encoding")
		}
		contentType = rest[:semi]
		encoded = rest[semi+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 image payload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image payload")
	}
	return data, contentType, nil
}
