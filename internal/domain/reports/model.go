package reports

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/icsr/icsr/internal/platform/e2b"
)

// Report maps to the reports table. Each row describes one generated ICSR
// document; the document itself lives in the blob store under Filename,
// encrypted with the per-report key. The key never appears in API responses.
type Report struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	Title         string        `db:"title" json:"title"`
	OwnerID       string        `db:"owner_id" json:"ownerId"`
	Filename      string        `db:"filename" json:"filename"`
	EncryptionKey string        `db:"encryption_key" json:"-"`
	Metadata      *e2b.CaseData `db:"metadata" json:"metadata,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updatedAt"`
}

const filenameCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewFilename returns an opaque blob name of the form
// report_<millis>_<random>.xml. The random suffix keeps names unique when
// two reports are created on the same millisecond.
func NewFilename(now time.Time) string {
	suffix := make([]byte, 9)
	max := big.NewInt(int64(len(filenameCharset)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand never fails on supported platforms; fall back to a
			// time-derived character rather than panicking.
			suffix[i] = filenameCharset[now.UnixNano()%int64(len(filenameCharset))]
			continue
		}
		suffix[i] = filenameCharset[n.Int64()]
	}
	return fmt.Sprintf("report_%d_%s.xml", now.UnixMilli(), suffix)
}
