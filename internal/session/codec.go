package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

// ErrInvalidToken is returned for share tokens that are not base64 JSON snapshots
var ErrInvalidToken = errors.New("invalid share token")

// Decoders tried in order. Browsers and chat apps mangle padding and the
// URL-unsafe characters, so every common variant is accepted.
var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.RawURLEncoding,
}

type wireSnapshot struct {
	Inputs       json.RawMessage `json:"inputs"`
	LockedFields models.LockMap  `json:"lockedFields"`
}

// Encode serializes a snapshot into a share token
func Encode(snap models.Snapshot) (string, error) {
	if snap.LockedFields == nil {
		snap.LockedFields = models.LockMap{}
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decode parses a share token. The inputs are merged onto the empty form so
// tokens written before a field existed still load. Decoded inputs are always
// normalized: Decode(Encode(s)) equals s exactly when s is already normalized,
// and models.Normalize(s) otherwise (nil lists come back empty).
func Decode(token string) (models.Snapshot, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Snapshot{}, fmt.Errorf("%w: empty", ErrInvalidToken)
	}

	payload, err := decodeBase64(token)
	if err != nil {
		return models.Snapshot{}, err
	}
	return Unmarshal(payload)
}

// Unmarshal parses a snapshot from its JSON form, the same way Decode does
func Unmarshal(payload []byte) (models.Snapshot, error) {
	var wire wireSnapshot
	if err := json.Unmarshal(payload, &wire); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if len(wire.Inputs) == 0 || string(wire.Inputs) == "null" {
		return models.Snapshot{}, fmt.Errorf("%w: missing inputs", ErrInvalidToken)
	}

	inputs := models.EmptyFormState()
	if err := json.Unmarshal(wire.Inputs, &inputs); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: inputs: %v", ErrInvalidToken, err)
	}

	return models.Snapshot{
		Inputs:       models.Normalize(inputs),
		LockedFields: wire.LockedFields.Sanitize(),
	}, nil
}

func decodeBase64(token string) ([]byte, error) {
	for _, enc := range encodings {
		if payload, err := enc.DecodeString(token); err == nil {
			return payload, nil
		}
	}
	return nil, fmt.Errorf("%w: not base64", ErrInvalidToken)
}
