// Package svg builds the SVG rendering of a trajectory.
//
// A Document keeps its elements as data and serializes them once, in the
// order they were added.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

const (
	svgNamespace   = "http://www.w3.org/2000/svg"
	xlinkNamespace = "http://www.w3.org/1999/xlink"
)

// Number is a coordinate or length, serialized with two decimals.
type Number float64

// MarshalXMLAttr implements xml.MarshalerAttr.
func (n Number) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: strconv.FormatFloat(float64(n), 'f', 2, 64)}, nil
}

// Element is anything that can be placed in a Document.
type Element interface {
	element()
}

// Rect is an SVG <rect>. Width and Height are strings so percentages work.
type Rect struct {
	XMLName xml.Name `xml:"rect"`
	X       *Number  `xml:"x,attr,omitempty"`
	Y       *Number  `xml:"y,attr,omitempty"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	Fill    string   `xml:"fill,attr,omitempty"`
	Style   string   `xml:"style,attr,omitempty"`
}

// Circle is an SVG <circle>.
type Circle struct {
	XMLName xml.Name `xml:"circle"`
	ID      string   `xml:"id,attr,omitempty"`
	CX      Number   `xml:"cx,attr"`
	CY      Number   `xml:"cy,attr"`
	R       Number   `xml:"r,attr"`
	Fill    string   `xml:"fill,attr"`
}

// Path is an SVG <path>.
type Path struct {
	XMLName xml.Name `xml:"path"`
	ID      string   `xml:"id,attr,omitempty"`
	Fill    string   `xml:"fill,attr"`
	Stroke  string   `xml:"stroke,attr,omitempty"`
	D       string   `xml:"d,attr"`
}

// MPath points an animation at a path.
type MPath struct {
	XMLName xml.Name `xml:"mpath"`
	Href    string   `xml:"xlink:href,attr"`
}

// AnimateMotion moves the referenced element along MPath.
type AnimateMotion struct {
	XMLName     xml.Name `xml:"animateMotion"`
	Href        string   `xml:"xlink:href,attr"`
	Dur         string   `xml:"dur,attr"`
	Begin       string   `xml:"begin,attr"`
	Fill        string   `xml:"fill,attr"`
	RepeatCount string   `xml:"repeatCount,attr"`
	MPath       MPath
}

func (Rect) element()          {}
func (Circle) element()        {}
func (Path) element()          {}
func (AnimateMotion) element() {}

// Document is an SVG image under construction.
type Document struct {
	width      float64
	height     float64
	background string
	elements   []Element
}

// New creates an empty document. An empty background leaves the canvas
// transparent.
func New(width, height float64, background string) *Document {
	return &Document{
		width:      width,
		height:     height,
		background: background,
	}
}

// Add appends elements in drawing order.
func (d *Document) Add(elems ...Element) {
	d.elements = append(d.elements, elems...)
}

// Elements returns the body elements, background excluded.
func (d *Document) Elements() []Element {
	return d.elements
}

// Width returns the canvas width.
func (d *Document) Width() float64 { return d.width }

// Height returns the canvas height.
func (d *Document) Height() float64 { return d.height }

type root struct {
	XMLName     xml.Name  `xml:"svg"`
	Version     string    `xml:"version,attr,omitempty"`
	BaseProfile string    `xml:"baseProfile,attr,omitempty"`
	Width       Number    `xml:"width,attr"`
	Height      Number    `xml:"height,attr"`
	Xmlns       string    `xml:"xmlns,attr,omitempty"`
	XmlnsXlink  string    `xml:"xmlns:xlink,attr,omitempty"`
	Elements    []Element `xml:",omitempty"`
}

func (d *Document) body() []Element {
	elems := make([]Element, 0, len(d.elements)+1)
	if d.background != "" {
		elems = append(elems, Rect{Width: "100%", Height: "100%", Fill: d.background})
	}
	return append(elems, d.elements...)
}

// WriteTo serializes the standalone document, namespaces included.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.encode(w, root{
		Version:     "1.1",
		BaseProfile: "full",
		Width:       Number(d.width),
		Height:      Number(d.height),
		Xmlns:       svgNamespace,
		XmlnsXlink:  xlinkNamespace,
		Elements:    d.body(),
	})
}

// InlineString serializes the document for embedding in an HTML page.
func (d *Document) InlineString() (string, error) {
	var buf bytes.Buffer
	_, err := d.encode(&buf, root{
		Width:    Number(d.width),
		Height:   Number(d.height),
		Elements: d.body(),
	})
	return buf.String(), err
}

func (d *Document) encode(w io.Writer, r root) (int64, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(r); err != nil {
		return 0, fmt.Errorf("failed to encode svg: %w", err)
	}
	buf.WriteByte('\n')
	return buf.WriteTo(w)
}

// String returns the standalone document. Encoding errors yield an empty string.
func (d *Document) String() string {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// WriteFile writes the standalone document to dir/filename and returns the
// path written.
func (d *Document) WriteFile(dir, filename string) (string, error) {
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return path, nil
}
