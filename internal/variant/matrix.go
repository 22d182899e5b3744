package variant

import (
	"strconv"
	"strings"

	"catalogadmin/backend/internal/domain"
)

type cellKey struct {
	Color string
	Size  string
}

// Matrix tracks the selected color and size axes of a product form together
// with a sparse quantity grid keyed by (color, size). Cell values are kept as
// the raw strings typed into the form; parsing happens only when totals are
// computed or the grid is flattened, so in-progress input ("", "-") never
// causes an error. Cells for deselected axes are retained but inert.
type Matrix struct {
	colors []string
	sizes  []string
	grid   map[cellKey]string
}

func NewMatrix() *Matrix {
	return &Matrix{grid: make(map[cellKey]string)}
}

// ToggleColor adds the color to the selection, or removes it if already
// selected. The grid is never pruned on deselect.
func (m *Matrix) ToggleColor(code string) {
	m.colors = toggle(m.colors, code)
}

// ToggleSize behaves like ToggleColor for the size axis.
func (m *Matrix) ToggleSize(label string) {
	m.sizes = toggle(m.sizes, label)
}

func toggle(list []string, value string) []string {
	for i, existing := range list {
		if existing == value {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, value)
}

// SetQuantity stores the raw field input for a cell without validating it.
func (m *Matrix) SetQuantity(color string, size string, raw string) {
	m.grid[cellKey{Color: color, Size: size}] = raw
}

// Quantity returns the raw stored input for a cell, "" if never set.
func (m *Matrix) Quantity(color string, size string) string {
	return m.grid[cellKey{Color: color, Size: size}]
}

func (m *Matrix) Colors() []string {
	return append([]string(nil), m.colors...)
}

func (m *Matrix) Sizes() []string {
	return append([]string(nil), m.sizes...)
}

func (m *Matrix) HasColor(code string) bool {
	return contains(m.colors, code)
}

func (m *Matrix) HasSize(label string) bool {
	return contains(m.sizes, label)
}

func contains(list []string, value string) bool {
	for _, existing := range list {
		if existing == value {
			return true
		}
	}
	return false
}

// RowTotal sums parsed quantities for one color across the selected sizes.
func (m *Matrix) RowTotal(color string) int {
	total := 0
	for _, size := range m.sizes {
		total += parseQuantity(m.grid[cellKey{Color: color, Size: size}])
	}
	return total
}

// ColumnTotal sums parsed quantities for one size across the selected colors.
func (m *Matrix) ColumnTotal(size string) int {
	total := 0
	for _, color := range m.colors {
		total += parseQuantity(m.grid[cellKey{Color: color, Size: size}])
	}
	return total
}

// GrandTotal sums the full selected cross product. Stale cells for
// deselected colors or sizes do not count.
func (m *Matrix) GrandTotal() int {
	total := 0
	for _, color := range m.colors {
		total += m.RowTotal(color)
	}
	return total
}

// Flatten emits one variant per cross-product cell with a positive parsed
// quantity, colors in selection order outer, sizes inner.
func (m *Matrix) Flatten() []domain.ProductVariant {
	variants := make([]domain.ProductVariant, 0, len(m.colors)*len(m.sizes))
	for _, color := range m.colors {
		for _, size := range m.sizes {
			qty := parseQuantity(m.grid[cellKey{Color: color, Size: size}])
			if qty > 0 {
				variants = append(variants, domain.ProductVariant{
					Color:    color,
					Size:     size,
					Quantity: qty,
				})
			}
		}
	}
	return variants
}

// PopulateFrom resets the matrix from an existing variant list, as when the
// edit form opens for a product that already has variants. Colors and sizes
// keep first-seen order; quantities are stored back as strings.
func (m *Matrix) PopulateFrom(records []domain.ProductVariant) {
	m.colors = m.colors[:0]
	m.sizes = m.sizes[:0]
	m.grid = make(map[cellKey]string, len(records))
	for _, record := range records {
		if !contains(m.colors, record.Color) {
			m.colors = append(m.colors, record.Color)
		}
		if !contains(m.sizes, record.Size) {
			m.sizes = append(m.sizes, record.Size)
		}
		m.grid[cellKey{Color: record.Color, Size: record.Size}] = strconv.Itoa(record.Quantity)
	}
}

// parseQuantity coerces raw field input to a non-negative count. Empty,
// malformed, and negative input all degrade to zero.
func parseQuantity(raw string) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	qty, err := strconv.Atoi(trimmed)
	if err != nil || qty < 0 {
		return 0
	}
	return qty
}
