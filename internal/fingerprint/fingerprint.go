package fingerprint

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/ddlforge/ddlforge/ir"
)

// TableFingerprint identifies the effective definition of a table snapshot
type TableFingerprint struct {
	Hash string `json:"hash"` // SHA256 of the normalized snapshot
}

// ComputeFingerprint hashes the definition a table snapshot describes.
// Diff bookkeeping is left out: prior names and edit statuses are cleared and
// entries tagged DELETE are dropped, so an unchanged "new" snapshot hashes the
// same as the "old" one it was derived from.
func ComputeFingerprint(table *ir.Table) (*TableFingerprint, error) {
	hash, err := hashObject(normalize(table))
	if err != nil {
		return nil, fmt.Errorf("failed to compute table hash: %w", err)
	}
	return &TableFingerprint{Hash: hash}, nil
}

func normalize(table *ir.Table) *ir.Table {
	if table == nil {
		return nil
	}
	out := table.Clone()

	columns := out.Columns[:0]
	for _, c := range out.Columns {
		if c == nil || c.EditStatus == ir.EditStatusDeleted {
			continue
		}
		c.OldName = ""
		c.EditStatus = ir.EditStatusUnchanged
		columns = append(columns, c)
	}
	out.Columns = columns

	indexes := out.Indexes[:0]
	for _, idx := range out.Indexes {
		if idx == nil || idx.EditStatus == ir.EditStatusDeleted {
			continue
		}
		idx.OldName = ""
		idx.EditStatus = ir.EditStatusUnchanged
		indexes = append(indexes, idx)
	}
	out.Indexes = indexes

	return out
}

// hashObject computes a SHA256 hash of any object
func hashObject(obj any) (string, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// String returns a human-readable representation of the fingerprint
func (f *TableFingerprint) String() string {
	if len(f.Hash) >= 8 {
		return fmt.Sprintf("Table fingerprint: %s", f.Hash[:8])
	}
	return fmt.Sprintf("Table fingerprint: %s", f.Hash)
}
