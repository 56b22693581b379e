package draw

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
)

var errWriteSVG = errors.New("failed to write svg document")

// OpAction names the kind of mutation carried by an Op.
type OpAction string

const (
	OpUpsert OpAction = "upsert"
	OpClear  OpAction = "clear"
)

// Op describes a single mutation of a tagged element. Subscribers use these to mirror a
// Document into a remote renderer.
type Op struct {
	Action OpAction `json:"action"`
	ID     string   `json:"id"`
	Layer  string   `json:"layer,omitempty"`
	Markup string   `json:"markup,omitempty"`
}

// Document is an in-memory SVG surface in field units. It is safe for concurrent readers
// while a single writer mutates it.
type Document struct {
	mu          sync.RWMutex
	width       float64
	height      float64
	scene       scene
	subscribers []func(Op)
}

func NewDocument(width float64, height float64) *Document {
	return &Document{width: width, height: height, scene: newScene()}
}

// Subscribe registers fn to receive every Upsert and Clear applied after this call.
func (d *Document) Subscribe(fn func(Op)) {
	d.mu.Lock()
	d.subscribers = append(d.subscribers, fn)
	d.mu.Unlock()
}

func (d *Document) Draw(layer Layer, shape Shape) {
	d.mu.Lock()
	d.scene.draw(layer, shape)
	d.mu.Unlock()
}

func (d *Document) Upsert(id string, layer Layer, shape Shape) {
	d.mu.Lock()
	elem := d.scene.upsert(id, layer, shape)
	subs := d.subscribers
	d.mu.Unlock()

	d.publish(subs, Op{Action: OpUpsert, ID: id, Layer: layer.String(), Markup: Markup(elem)})
}

func (d *Document) Clear(id string) {
	d.mu.Lock()
	removed := d.scene.clear(id)
	subs := d.subscribers
	d.mu.Unlock()

	if removed {
		d.publish(subs, Op{Action: OpClear, ID: id})
	}
}

func (d *Document) publish(subs []func(Op), op Op) {
	for _, sub := range subs {
		sub(op)
	}
}

// Lookup returns the tagged element with the given id.
func (d *Document) Lookup(id string) (Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.scene.lookup(id)
}

// IDs returns the ids of all tagged elements currently present, sorted.
func (d *Document) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.scene.ids()
}

// Elements returns every element, static and tagged, in paint order.
func (d *Document) Elements() []Element {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.scene.ordered()
}

// WriteSVG serialises the document. Each layer is emitted as its own group so that remote
// renderers can insert elements into the correct stacking position.
func (d *Document) WriteSVG(writer io.Writer) error {
	d.mu.RLock()
	elements := d.scene.ordered()
	d.mu.RUnlock()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" preserveAspectRatio="xMidYMid meet">`,
		num(d.width), num(d.height))
	buf.WriteString("\n")

	idx := 0
	for _, layer := range Layers {
		fmt.Fprintf(&buf, `<g id="layer-%s">`, layer)
		buf.WriteString("\n")
		for idx < len(elements) && elements[idx].Layer == layer {
			buf.WriteString(Markup(elements[idx]))
			buf.WriteString("\n")
			idx++
		}
		buf.WriteString("</g>\n")
	}

	buf.WriteString("</svg>\n")

	if _, err := writer.Write(buf.Bytes()); err != nil {
		return errors.Join(err, errWriteSVG)
	}

	return nil
}

// Markup renders a single element as an SVG fragment.
func Markup(elem Element) string {
	var attrs attrList
	if elem.ID != "" {
		attrs.add("id", elem.ID)
	}

	switch shape := elem.Shape.(type) {
	case Rect:
		attrs.num("x", shape.X).num("y", shape.Y).num("width", shape.Width).num("height", shape.Height)
		attrs.style(shape.Style)

		return "<rect" + attrs.String() + "/>"
	case Line:
		attrs.num("x1", shape.X1).num("y1", shape.Y1).num("x2", shape.X2).num("y2", shape.Y2)
		attrs.style(shape.Style)

		return "<line" + attrs.String() + "/>"
	case Circle:
		attrs.num("cx", shape.CX).num("cy", shape.CY).num("r", shape.R)
		attrs.style(shape.Style)

		return "<circle" + attrs.String() + "/>"
	case QuadPath:
		attrs.add("d", fmt.Sprintf("M %s %s Q %s %s %s %s",
			num(shape.X1), num(shape.Y1), num(shape.CX), num(shape.CY), num(shape.X2), num(shape.Y2)))
		if shape.Fill == "" {
			shape.Fill = "none"
		}
		attrs.style(shape.Style)

		return "<path" + attrs.String() + "/>"
	case Text:
		attrs.num("x", shape.X).num("y", shape.Y)
		attrs.style(shape.Style)
		if shape.Size > 0 {
			attrs.num("font-size", shape.Size)
		}
		attrs.add("font-family", shape.Family)
		attrs.add("text-anchor", string(shape.Anchor))
		attrs.add("dominant-baseline", string(shape.Baseline))
		if shape.Bold {
			attrs.add("font-weight", "bold")
		}
		if shape.Rotate != 0 {
			attrs.add("transform", fmt.Sprintf("rotate(%s %s %s)", num(shape.Rotate), num(shape.X), num(shape.Y)))
		}

		return "<text" + attrs.String() + ">" + escape(shape.Content) + "</text>"
	case Image:
		attrs.add("class", "team-logo")
		attrs.num("x", shape.X).num("y", shape.Y).num("width", shape.Width).num("height", shape.Height)
		attrs.add("preserveAspectRatio", "xMidYMid meet")
		attrs.add("href", shape.Href)

		return "<image" + attrs.String() + "/>"
	default:
		return ""
	}
}

type attrList struct {
	parts []string
}

func (a *attrList) add(name string, value string) *attrList {
	if value == "" {
		return a
	}

	a.parts = append(a.parts, name+`="`+escape(value)+`"`)

	return a
}

func (a *attrList) num(name string, value float64) *attrList {
	a.parts = append(a.parts, name+`="`+num(value)+`"`)

	return a
}

func (a *attrList) style(style Style) {
	a.add("fill", style.Fill)
	a.add("stroke", style.Stroke)
	if style.StrokeWidth > 0 {
		a.num("stroke-width", style.StrokeWidth)
	}
	a.add("stroke-dasharray", style.Dash)
	if style.Opacity > 0 {
		a.num("opacity", style.Opacity)
	}
}

func (a *attrList) String() string {
	if len(a.parts) == 0 {
		return ""
	}

	return " " + strings.Join(a.parts, " ")
}

func num(value float64) string {
	return strconv.FormatFloat(math.Round(value*10000)/10000, 'f', -1, 64)
}

func escape(value string) string {
	var buf strings.Builder
	_ = xml.EscapeText(&buf, []byte(value))

	return buf.String()
}
