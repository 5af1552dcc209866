package layout

import (
	"fmt"

	"go.uber.org/zap"

	"l14tables/pkg/css"
	"l14tables/pkg/html"
	"l14tables/pkg/text"
)

// tableGap separates consecutive tables and the page edge.
const tableGap = 8.0

type LayoutEngine struct {
	viewport struct {
		width  float64
		height float64
	}
	logger   *zap.Logger
	measurer *text.Measurer

	defaultCollapse css.BorderCollapse
	debugBorders    bool
}

func NewLayoutEngine(viewportWidth, viewportHeight float64) *LayoutEngine {
	le := &LayoutEngine{
		logger:          zap.NewNop(),
		measurer:        text.Default(),
		defaultCollapse: css.BorderCollapseSeparate,
	}
	le.viewport.width = viewportWidth
	le.viewport.height = viewportHeight
	return le
}

// WithLogger sets the logger used for layout diagnostics.
func (le *LayoutEngine) WithLogger(logger *zap.Logger) *LayoutEngine {
	if logger != nil {
		le.logger = logger
	}
	return le
}

// WithMeasurer sets the text measurer used for cell content.
func (le *LayoutEngine) WithMeasurer(m *text.Measurer) *LayoutEngine {
	if m != nil {
		le.measurer = m
	}
	return le
}

// SetDefaultBorderCollapse sets the border model for tables that do not
// declare border-collapse.
func (le *LayoutEngine) SetDefaultBorderCollapse(c css.BorderCollapse) {
	le.defaultCollapse = c
}

// SetDebugBorders logs every resolved collapsed edge.
func (le *LayoutEngine) SetDebugBorders(enabled bool) {
	le.debugBorders = enabled
}

// Layout computes styles for doc and lays out each of its outermost tables,
// stacked vertically.
func (le *LayoutEngine) Layout(doc *html.Document) ([]*Table, error) {
	styles := css.ApplyStylesToDocument(doc)
	nodes := FindTables(doc.Root, styles)
	if len(nodes) == 0 {
		return nil, ErrNoTable
	}

	tables := make([]*Table, 0, len(nodes))
	y := tableGap
	for i, node := range nodes {
		t, err := BuildTable(node, styles)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
		le.logger.Debug("grid built",
			zap.Int("table", i),
			zap.Int("sections", len(t.Sections)),
			zap.Int("rows", t.NumRows()),
			zap.Int("cols", t.NumEffCols()))
		le.LayoutTable(t, tableGap, y, le.viewport.width-2*tableGap)
		y += t.Box.BorderBox().Height + tableGap
		tables = append(tables, t)
	}
	return tables, nil
}
