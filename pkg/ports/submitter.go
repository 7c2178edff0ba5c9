package ports

import (
	"context"

	"github.com/aretw0/sfsweb/pkg/domain"
)

// Submitter runs one Request through the submission pipeline.
type Submitter interface {
	Submit(ctx context.Context, req domain.Request) domain.Outcome
}
