// =============================================================================
// FBX to DAE Automation - DAE Scene Module
// =============================================================================
//
// The converter wraps every model's scene graph in one extra top-level node:
//
//   <visual_scene>
//    <node name="chair">        <-- artifact
//     <node name="legA"/>
//     <node name="legB"/>
//    </node>
//   </visual_scene>
//
// This module locates the visual scene and lifts the wrapper's nodes up one
// level so they become direct children of <visual_scene>.
//
// =============================================================================

package dae

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Element names along the path to the visual scene.
const (
	TagRoot        = "COLLADA"
	TagLibrary     = "library_visual_scenes"
	TagVisualScene = "visual_scene"
	TagNode        = "node"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// MissingElementError means an element required to reach the visual scene
// is absent.
type MissingElementError struct {
	Path []string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("missing element %s", strings.Join(e.Path, "/"))
}

// ParseError means a DAE file could not be parsed as XML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// =============================================================================
// SCENE
// =============================================================================

// Scene is the <visual_scene> element of a parsed DAE document.
type Scene struct {
	Element *etree.Element
}

// Result describes what Flatten did.
type Result struct {
	// Normalized is true when a wrapper node was removed.
	Normalized bool
	// Moved is the number of nodes lifted out of the wrapper.
	Moved int
}

// Locate finds the first visual scene of doc by descending
// COLLADA -> library_visual_scenes -> visual_scene.
func Locate(doc *etree.Document) (*Scene, error) {
	path := []string{TagRoot, TagLibrary, TagVisualScene}

	root := child(&doc.Element, TagRoot)
	if root == nil {
		return nil, &MissingElementError{Path: path[:1]}
	}
	library := child(root, TagLibrary)
	if library == nil {
		return nil, &MissingElementError{Path: path[:2]}
	}
	scene := child(library, TagVisualScene)
	if scene == nil {
		return nil, &MissingElementError{Path: path}
	}
	return &Scene{Element: scene}, nil
}

// transformTags are the children a wrapper node may carry besides nodes.
// They only place the wrapper itself and are dropped with it.
var transformTags = map[string]bool{
	"matrix":    true,
	"translate": true,
	"rotate":    true,
	"scale":     true,
	"lookat":    true,
	"skew":      true,
}

// Wrapper returns the converter's wrapper node, or nil when the scene is not
// wrapped. The candidate is the first node child of the scene. It is a
// wrapper when it has node children and nothing else except transforms;
// a node that instantiates geometry, cameras, lights or carries extra data
// is scene content and is never removed.
func (s *Scene) Wrapper() *etree.Element {
	candidate := child(s.Element, TagNode)
	if candidate == nil {
		return nil
	}

	hasNodes := false
	for _, c := range candidate.ChildElements() {
		switch {
		case c.FullTag() == TagNode:
			hasNodes = true
		case transformTags[c.FullTag()]:
		default:
			return nil
		}
	}
	if !hasNodes {
		return nil
	}
	return candidate
}

// Flatten removes the wrapper node and puts deep copies of its node
// children, in reverse order, at the front of the visual scene. Other
// children of the scene keep their relative order after them. The wrapper's
// transforms are dropped with it.
func Flatten(s *Scene) Result {
	wrapper := s.Wrapper()
	if wrapper == nil {
		return Result{}
	}

	lifted := children(wrapper, TagNode)
	for i, j := 0, len(lifted)-1; i < j; i, j = i+1, j-1 {
		lifted[i], lifted[j] = lifted[j], lifted[i]
	}

	ordered := make([]etree.Token, 0, len(lifted)+len(s.Element.Child))
	for _, n := range lifted {
		ordered = append(ordered, n.Copy())
	}
	for _, t := range s.Element.Child {
		if t != etree.Token(wrapper) {
			ordered = append(ordered, t)
		}
	}

	replaceChildren(s.Element, ordered)
	return Result{Normalized: true, Moved: len(lifted)}
}

// replaceChildren makes children the complete, ordered child list of e.
func replaceChildren(e *etree.Element, tokens []etree.Token) {
	for len(e.Child) > 0 {
		e.RemoveChildAt(len(e.Child) - 1)
	}
	for _, t := range tokens {
		e.AddChild(t)
	}
}

// children returns the child elements of e named exactly name. Prefixed
// names such as "x:node" do not match "node".
func children(e *etree.Element, name string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.FullTag() == name {
			out = append(out, c)
		}
	}
	return out
}

func child(e *etree.Element, name string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.FullTag() == name {
			return c
		}
	}
	return nil
}
