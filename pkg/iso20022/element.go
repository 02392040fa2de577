package iso20022

import (
	"encoding/xml"
	"fmt"
)

// Attr is a single XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is an immutable, ordered description of an XML element: a name,
// optional character data, attributes in insertion order and child elements
// in document order. All methods return copies; an Element is never mutated
// after construction.
type Element struct {
	name     string
	text     string
	attrs    []Attr
	children []Element
}

// NewElement creates a container element with the given children in order.
func NewElement(name string, children ...Element) Element {
	return Element{
		name:     name,
		children: append([]Element(nil), children...),
	}
}

// Leaf creates an element holding only character data. An empty text still
// produces the element.
func Leaf(name, text string) Element {
	return Element{name: name, text: text}
}

// WithAttr returns a copy of e carrying an additional attribute.
func (e Element) WithAttr(name, value string) Element {
	out := e
	out.attrs = append(append([]Attr(nil), e.attrs...), Attr{Name: name, Value: value})
	return out
}

// Name returns the element's local name.
func (e Element) Name() string { return e.name }

// Text returns the element's character data.
func (e Element) Text() string { return e.text }

// IsZero reports whether e is the zero Element.
func (e Element) IsZero() bool { return e.name == "" }

// Attr returns the value of the named attribute.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs returns the attributes in insertion order.
func (e Element) Attrs() []Attr {
	return append([]Attr(nil), e.attrs...)
}

// Children returns the child elements in document order.
func (e Element) Children() []Element {
	return append([]Element(nil), e.children...)
}

// Child returns the first direct child with the given name.
func (e Element) Child(name string) (Element, bool) {
	for _, c := range e.children {
		if c.name == name {
			return c, true
		}
	}
	return Element{}, false
}

// Find walks down the tree following the first child matching each name in path.
func (e Element) Find(path ...string) (Element, bool) {
	cur := e
	for _, name := range path {
		next, ok := cur.Child(name)
		if !ok {
			return Element{}, false
		}
		cur = next
	}
	return cur, true
}

// ChildNames returns the names of the direct children in document order.
func (e Element) ChildNames() []string {
	names := make([]string, 0, len(e.children))
	for _, c := range e.children {
		names = append(names, c.name)
	}
	return names
}

// MarshalXML encodes the element tree. The start element passed in by the
// encoder is ignored; the element's own name is used.
func (e Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	if e.name == "" {
		return fmt.Errorf("iso20022: cannot encode element without a name")
	}

	start := xml.StartElement{Name: xml.Name{Local: e.name}}
	for _, a := range e.attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.text != "" {
		if err := enc.EncodeToken(xml.CharData(e.text)); err != nil {
			return err
		}
	}
	for _, c := range e.children {
		if err := c.MarshalXML(enc, xml.StartElement{}); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// ToXML serializes the element tree, optionally indented with two spaces.
func (e Element) ToXML(indent bool) ([]byte, error) {
	if indent {
		return xml.MarshalIndent(e, "", "  ")
	}
	return xml.Marshal(e)
}
