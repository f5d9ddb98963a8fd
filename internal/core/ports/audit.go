package ports

import (
	"context"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
)

// AuditSink accepts audit entries. Implementations are best-effort: Record
// must never block the request path and must swallow storage failures.
type AuditSink interface {
	Record(ctx context.Context, entry domain.AuditEntry)
}
