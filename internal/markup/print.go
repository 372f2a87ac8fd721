package markup

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

const indentUnit = "  "

// PrintModule renders fn as a JSX module. The module imports its sibling
// stylesheet "./<Name>.css", each embedded component from "./<Component>"
// and every image asset, then default-exports the component function.
func PrintModule(fn *Function) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "import %s;\n", jsString("./"+fn.Name+".css"))
	for _, c := range fn.Components {
		fmt.Fprintf(&sb, "import %s from %s;\n", c, jsString("./"+c))
	}
	for _, a := range fn.Assets {
		fmt.Fprintf(&sb, "import %s from %s;\n", a.Name, jsString(a.Path))
	}
	sb.WriteByte('\n')

	params := ""
	if len(fn.Params) > 0 {
		params = "{ " + strings.Join(fn.Params, ", ") + " }"
	}
	fmt.Fprintf(&sb, "export default function %s(%s) {\n", fn.Name, params)
	if fn.Body == nil {
		sb.WriteString(indentUnit + "return null;\n")
	} else {
		sb.WriteString(indentUnit + "return (\n")
		printElement(&sb, fn.Body, 2)
		sb.WriteString(indentUnit + ");\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Print renders a single element tree as JSX.
func Print(e *Element) string {
	var sb strings.Builder
	printElement(&sb, e, 0)
	return sb.String()
}

func printElement(sb *strings.Builder, e *Element, depth int) {
	indent := strings.Repeat(indentUnit, depth)

	sb.WriteString(indent)
	sb.WriteByte('<')
	sb.WriteString(e.Tag)

	var content *Attr
	for i := range e.Attrs {
		a := e.Attrs[i]
		// Text content prints as the element's first child.
		if a.Name == AttrChildren && !e.Component {
			content = &e.Attrs[i]
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(printAttr(a))
	}

	if content == nil && len(e.Children) == 0 {
		sb.WriteString(" />\n")
		return
	}
	sb.WriteString(">\n")

	if content != nil {
		sb.WriteString(indent + indentUnit)
		sb.WriteString(printValue(*content))
		sb.WriteByte('\n')
	}
	for _, c := range e.Children {
		printElement(sb, c, depth+1)
	}

	sb.WriteString(indent)
	sb.WriteString("</")
	sb.WriteString(e.Tag)
	sb.WriteString(">\n")
}

func printAttr(a Attr) string {
	if a.Kind == AttrString && !strings.ContainsAny(a.Value, "\"\\\n{}<>") {
		return a.Name + `="` + a.Value + `"`
	}
	return a.Name + "=" + printValue(a)
}

func printValue(a Attr) string {
	if a.Kind == AttrExpr {
		return "{" + a.Value + "}"
	}
	return "{" + jsString(a.Value) + "}"
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// strings always marshal
		panic(err)
	}
	return string(b)
}
