package export

import (
	"strings"
	"unicode"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// SanitizeName converts a model id to an HCL identifier (e.g. 3f-a1 -> id_3f_a1).
func SanitizeName(id string) string {
	var b strings.Builder
	for _, r := range id {
		if r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" || unicode.IsDigit(rune(s[0])) {
		s = "id_" + s
	}
	return s
}

// SetAttributeStr sets a string attribute on a block body, skipping empty values.
func SetAttributeStr(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

// SetAttributeNum sets a number attribute.
func SetAttributeNum(body *hclwrite.Body, name string, value float64) {
	body.SetAttributeValue(name, cty.NumberFloatVal(value))
}

// SetAttributeList sets a list(string) attribute, skipping empty lists.
func SetAttributeList(body *hclwrite.Body, name string, values []string) {
	if len(values) == 0 {
		return
	}
	list := make([]cty.Value, len(values))
	for i, v := range values {
		list[i] = cty.StringVal(v)
	}
	body.SetAttributeValue(name, cty.ListVal(list))
}

// SetAttributeRef sets an attribute to a reference such as entity.customer.
func SetAttributeRef(body *hclwrite.Body, name, kind, ident string) {
	body.SetAttributeTraversal(name, refTraversal(kind, ident))
}

func refTraversal(root, attr string) hcl.Traversal {
	return hcl.Traversal{
		hcl.TraverseRoot{Name: root},
		hcl.TraverseAttr{Name: attr},
	}
}

// BlockToBytes formats a block and returns its bytes.
func BlockToBytes(block *hclwrite.Block) []byte {
	f := hclwrite.NewEmptyFile()
	f.Body().AppendBlock(block)
	return f.Bytes()
}
