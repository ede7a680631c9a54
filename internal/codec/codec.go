package codec

import (
	"io"

	"threatlens/internal/domain"
)

// Importer parses an external payload into a raw graph ready for
// normalization
type Importer interface {
	Parse(r io.Reader) (*domain.RawGraph, error)
	Format() string
}

// Exporter writes a normalized snapshot to an external format
type Exporter interface {
	Export(snap *domain.Snapshot, w io.Writer) error
	Format() string
}
