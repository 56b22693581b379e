// Package draw defines the minimal vector drawing backend used to paint the field and the
// play overlays, along with an SVG document and a terminal raster implementation.
package draw

// Layer controls paint order. Elements on a higher layer are always painted above lower ones
// regardless of insertion order.
type Layer int

const (
	LayerField Layer = iota
	LayerMarker
	LayerOverlay
	LayerLogo
	LayerText
)

// Layers lists every layer in paint order.
var Layers = []Layer{LayerField, LayerMarker, LayerOverlay, LayerLogo, LayerText}

func (l Layer) String() string {
	switch l {
	case LayerField:
		return "field"
	case LayerMarker:
		return "marker"
	case LayerOverlay:
		return "overlay"
	case LayerLogo:
		return "logo"
	case LayerText:
		return "text"
	default:
		return "unknown"
	}
}

// Style holds the common presentation attributes. Zero values are omitted when rendering.
type Style struct {
	Stroke      string
	StrokeWidth float64
	Fill        string
	Dash        string
	Opacity     float64
}

// Shape is implemented by every drawable primitive in this package.
type Shape interface {
	isShape()
}

type Rect struct {
	X, Y, Width, Height float64
	Style
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Style
}

type Circle struct {
	CX, CY, R float64
	Style
}

// QuadPath is a single quadratic bezier segment from (X1,Y1) to (X2,Y2) with control point (CX,CY).
type QuadPath struct {
	X1, Y1 float64
	CX, CY float64
	X2, Y2 float64
	Style
}

type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

type Baseline string

const (
	BaselineAuto    Baseline = ""
	BaselineHanging Baseline = "hanging"
)

// Text is a label anchored at (X,Y). Rotate is in degrees around the anchor point.
type Text struct {
	X, Y     float64
	Content  string
	Size     float64
	Family   string
	Anchor   Anchor
	Baseline Baseline
	Rotate   float64
	Bold     bool
	Style
}

// Image is a positioned image reference. Alt is used by backends that cannot show images.
type Image struct {
	X, Y, Width, Height float64
	Href                string
	Alt                 string
}

func (Rect) isShape()     {}
func (Line) isShape()     {}
func (Circle) isShape()   {}
func (QuadPath) isShape() {}
func (Text) isShape()     {}
func (Image) isShape()    {}

// Surface is the drawing backend contract. Static elements are appended with Draw, tagged
// elements are created or replaced with Upsert and removed with Clear. Clearing an unknown
// id is a no-op.
type Surface interface {
	Draw(layer Layer, shape Shape)
	Upsert(id string, layer Layer, shape Shape)
	Clear(id string)
}

// Element is a shape placed on a surface.
type Element struct {
	ID    string
	Layer Layer
	Shape Shape
	seq   int
}
