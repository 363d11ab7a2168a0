package mapper

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"conflux/internal/raid/models"
)

// Checksum computes the content hash of an update payload for drift
// detection between the registry and the local project. The identifier block
// is zeroed first: its version mutates on every registry write without the
// content changing. MD5 is deliberate here; this is a change-detection
// checksum, not a security boundary.
func Checksum(req models.UpdateRequest) (string, error) {
	req.Identifier = models.Identifier{}

	// encoding/json emits struct fields in declaration order and the mapper
	// preserves collection order, so the serialization is canonical.
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("serialize update payload: %w", err)
	}

	sum := md5.Sum(payload)
	return hex.EncodeToString(sum[:]), nil
}
