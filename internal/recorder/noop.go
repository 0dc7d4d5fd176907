package recorder

import "MarketBreadth/internal/model"

// NoopRecorder discards the document; used for dry runs.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) Record(_ *model.ExportDocument) error { return nil }
func (n *NoopRecorder) Name() string                         { return "noop" }
