package services

import (
	"fmt"
	"strings"

	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
)

// Axis names by title position.
const (
	AxisSize  = "size"
	AxisColor = "color"
)

// keySeparator cannot appear in a trimmed option value.
const keySeparator = "\x1f"

// Axis is one option dimension with its distinct values in first-seen order.
type Axis struct {
	Name   string
	Values []string
}

// Selection maps axis name to the chosen value. Missing or empty entries are
// unselected.
type Selection map[string]string

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// With returns a copy with one axis set.
func (s Selection) With(axis, value string) Selection {
	out := s.Clone()
	out[axis] = value
	return out
}

// OptionIndex resolves option selections to variants for one product.
// It is built once per fetched product; lookups never re-split titles.
type OptionIndex struct {
	product  *domain.Product
	axes     []Axis
	variants map[string]*domain.Variant
	widths   map[int]bool // option counts of the indexed titles
	defaults Selection
}

// axisName names the axis at a title position.
func axisName(position int) string {
	switch position {
	case 0:
		return AxisSize
	case 1:
		return AxisColor
	default:
		return fmt.Sprintf("option%d", position+1)
	}
}

// NewOptionIndex derives the axes and the tuple index from product variants.
// If two variants share a tuple the first one wins.
func NewOptionIndex(product *domain.Product) *OptionIndex {
	idx := &OptionIndex{
		product:  product,
		variants: make(map[string]*domain.Variant, len(product.Variants)),
		widths:   map[int]bool{},
		defaults: Selection{},
	}

	width := 0
	parsed := make([][]string, len(product.Variants))
	for i := range product.Variants {
		parsed[i] = product.Variants[i].OptionValues()
		if len(parsed[i]) > width {
			width = len(parsed[i])
		}
	}

	idx.axes = make([]Axis, width)
	seen := make([]map[string]bool, width)
	for pos := 0; pos < width; pos++ {
		idx.axes[pos] = Axis{Name: axisName(pos), Values: []string{}}
		seen[pos] = map[string]bool{}
	}

	for i := range product.Variants {
		values := parsed[i]
		for pos, value := range values {
			if value == "" || seen[pos][value] {
				continue
			}
			seen[pos][value] = true
			idx.axes[pos].Values = append(idx.axes[pos].Values, value)
		}

		idx.widths[filledPrefix(values)] = true
		key := tupleKey(pad(values, width))
		if _, exists := idx.variants[key]; !exists {
			idx.variants[key] = &product.Variants[i]
		}
	}

	if len(parsed) > 0 {
		for pos, value := range parsed[0] {
			if value != "" {
				idx.defaults[axisName(pos)] = value
			}
		}
	}

	return idx
}

// Product returns the indexed product.
func (idx *OptionIndex) Product() *domain.Product { return idx.product }

// Axes returns the option axes in title order.
func (idx *OptionIndex) Axes() []Axis {
	out := make([]Axis, len(idx.axes))
	for i, a := range idx.axes {
		out[i] = Axis{Name: a.Name, Values: append([]string(nil), a.Values...)}
	}
	return out
}

// Values returns the distinct values of one axis, or nil if the product has
// no such axis.
func (idx *OptionIndex) Values(axis string) []string {
	for _, a := range idx.axes {
		if a.Name == axis {
			return append([]string(nil), a.Values...)
		}
	}
	return nil
}

// HasAxis reports whether the product varies along axis.
func (idx *OptionIndex) HasAxis(axis string) bool {
	for _, a := range idx.axes {
		if a.Name == axis {
			return true
		}
	}
	return false
}

// DefaultSelection returns the first variant's option values, seeding
// selection controls when a product is loaded.
func (idx *OptionIndex) DefaultSelection() Selection {
	return idx.defaults.Clone()
}

// IsComplete reports whether sel selects a value on every axis some variant
// title carries at that width. Axes left unselected must be trailing, and a
// variant with that many options must exist. Blank values count as unselected.
func (idx *OptionIndex) IsComplete(sel Selection) bool {
	values := idx.tuple(sel)
	filled := filledPrefix(values)
	for _, v := range values[filled:] {
		if v != "" {
			return false
		}
	}
	return filled == len(values) || idx.widths[filled]
}

// Resolve returns the variant whose option tuple exactly matches sel.
// It returns false while the selection is incomplete or when the combination
// does not exist; there is no fallback to a default variant.
func (idx *OptionIndex) Resolve(sel Selection) (*domain.Variant, bool) {
	if !idx.IsComplete(sel) {
		return nil, false
	}
	v, ok := idx.variants[tupleKey(idx.tuple(sel))]
	return v, ok
}

// tuple lays out the trimmed selection in axis order.
func (idx *OptionIndex) tuple(sel Selection) []string {
	values := make([]string, len(idx.axes))
	for pos, a := range idx.axes {
		values[pos] = strings.TrimSpace(sel[a.Name])
	}
	return values
}

// IsAvailable reports whether sel names an existing, purchasable variant.
func (idx *OptionIndex) IsAvailable(sel Selection) bool {
	v, ok := idx.Resolve(sel)
	return ok && v.Available
}

// IsValueSelectable reports whether choosing value on axis, keeping the other
// current selections, can still lead to an available variant. Unselected
// axes match any value.
func (idx *OptionIndex) IsValueSelectable(axis, value string, current Selection) bool {
	pos := -1
	for i, a := range idx.axes {
		if a.Name == axis {
			pos = i
			break
		}
	}
	if pos < 0 {
		return false
	}

	for key, v := range idx.variants {
		if !v.Available {
			continue
		}
		values := strings.Split(key, keySeparator)
		if values[pos] != value {
			continue
		}
		compatible := true
		for i, a := range idx.axes {
			if i == pos {
				continue
			}
			if chosen := strings.TrimSpace(current[a.Name]); chosen != "" && values[i] != chosen {
				compatible = false
				break
			}
		}
		if compatible {
			return true
		}
	}
	return false
}

// filledPrefix counts the leading non-empty values.
func filledPrefix(values []string) int {
	n := 0
	for n < len(values) && values[n] != "" {
		n++
	}
	return n
}

func tupleKey(values []string) string {
	return strings.Join(values, keySeparator)
}

func pad(values []string, width int) []string {
	if len(values) == width {
		return values
	}
	out := make([]string, width)
	copy(out, values)
	return out
}
