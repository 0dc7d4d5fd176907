package recorder

import "MarketBreadth/internal/model"

// Recorder persists the export document of a run.
type Recorder interface {
	Record(doc *model.ExportDocument) error
	Name() string
}
