package nav

// ElementKind tags what an element is, decided once at discovery time.
type ElementKind int

const (
	KindButton ElementKind = iota
	// KindRange is an element carrying a RangeSelector (option box, slider).
	KindRange
	// KindInputBox is one key slot of an input-rebinding container.
	KindInputBox
	// KindPlaceholder pads the inactive cells of a partial 2D grid.
	KindPlaceholder
)

func (k ElementKind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindRange:
		return "range"
	case KindInputBox:
		return "input"
	case KindPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Element is one navigable unit. Its index is its position in Elements.
type Element struct {
	Kind    ElementKind
	Enabled bool
	Visible bool
	// Range is set for KindRange elements.
	Range *RangeSelector
}

// NewElement returns an enabled, visible element of the given kind.
func NewElement(kind ElementKind) Element {
	return Element{Kind: kind, Enabled: true, Visible: true}
}

// Navigable reports whether focus may rest on the element.
func (e Element) Navigable() bool {
	return e.Enabled && e.Visible && e.Kind != KindPlaceholder
}

// Navigability is what the cursor needs to know about the elements it walks.
type Navigability interface {
	Len() int
	Navigable(i int) bool
}

// Elements is the ordered element set of one screen.
type Elements []Element

// Len returns the number of elements.
func (es Elements) Len() int {
	return len(es)
}

// Navigable reports whether element i exists and may take focus.
func (es Elements) Navigable(i int) bool {
	if i < 0 || i >= len(es) {
		return false
	}
	return es[i].Navigable()
}
