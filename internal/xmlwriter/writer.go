// =============================================================================
// FBX to DAE Automation - XML Writer Module
// =============================================================================
//
// This module serializes DAE documents. The output format is a
// compatibility requirement for downstream consumers that diff DAE files,
// so it is fixed:
//
//   <?xml version="1.0" encoding="utf-8"?>
//   <COLLADA xmlns="http://www.collada.org/2005/11/COLLADASchema">
//    <library_visual_scenes>
//     <visual_scene id="scene">
//      <node name="legB"></node>          <!-- never <node/> -->
//     </visual_scene>
//    </library_visual_scenes>
//   </COLLADA>
//
//   - Space indentation (IndentSpaces per level).
//   - Empty elements are written with an explicit end tag.
//   - UTF-8 encoding.
//
// =============================================================================

package xmlwriter

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/fbx-to-dae-automation/pkg/utils"
)

// =============================================================================
// WRITE OPTIONS
// =============================================================================

// WriteOptions contains options for DAE serialization.
type WriteOptions struct {
	// IndentSpaces is the number of spaces per nesting level.
	// Default: 1
	IndentSpaces int

	// IncludeXMLDeclaration adds an XML declaration when the document has
	// none. An existing declaration is always kept.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for an added declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for an added declaration. Only UTF-8 is
	// written.
	// Default: "utf-8"
	Encoding string

	// NoEmptyElementTags forces <a></a> instead of <a/>.
	// Default: true
	NoEmptyElementTags bool
}

// DefaultWriteOptions returns the default serialization options.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		IndentSpaces:          1,
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "utf-8",
		NoEmptyElementTags:    true,
	}
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// Marshal formats doc and returns its bytes. The document's whitespace is
// re-indented in place.
func Marshal(doc *etree.Document, options WriteOptions) ([]byte, error) {
	if options.IncludeXMLDeclaration && declaration(doc) == nil {
		decl := etree.NewProcInst("xml",
			fmt.Sprintf(`version="%s" encoding="%s"`, options.XMLVersion, options.Encoding))
		doc.InsertChildAt(0, decl)
	}

	indent := etree.NewIndentSettings()
	indent.Spaces = options.IndentSpaces
	if indent.Spaces <= 0 {
		indent.Spaces = 1
	}
	doc.IndentWithSettings(indent)

	doc.WriteSettings.CanonicalEndTags = options.NoEmptyElementTags
	// Escape only what XML requires (&, < and > in text; &, < and " in
	// attribute values) so untouched content round-trips unchanged.
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal XML: %w", err)
	}
	return data, nil
}

// WriteFile formats doc and atomically replaces the file at path with it.
func WriteFile(doc *etree.Document, path string, options WriteOptions) error {
	data, err := Marshal(doc, options)
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// declaration returns the document's <?xml ...?> processing instruction.
func declaration(doc *etree.Document) *etree.ProcInst {
	for _, t := range doc.Child {
		if p, ok := t.(*etree.ProcInst); ok && strings.EqualFold(p.Target, "xml") {
			return p
		}
	}
	return nil
}
