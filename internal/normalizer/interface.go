package normalizer

import (
	"context"
)

//go:generate mockgen -package mocknormalizer -source=interface.go -destination=mock/mocknormalizer.go *
type Normalizer interface {
	Normalize(ctx context.Context, raw string) (*Result, error)
	NormalizeBatch(ctx context.Context, raws []string) ([]BatchItem, error)
	Equal(ctx context.Context, a, b string) (bool, error)
}
