package report

import "context"

// Renderer turns a Layout into a document. Output depends on the layout only.
type Renderer interface {
	Render(ctx context.Context, layout Layout) ([]byte, error)
}
