package browser

import "fmt"

// LocatorKind selects how a Locator's value is interpreted.
type LocatorKind int

const (
	ByCSS LocatorKind = iota
	ByID
	ByName
	ByLinkText
	ByXPath
)

// Locator identifies one element on a page.
type Locator struct {
	Kind  LocatorKind
	Value string
}

// CSS locates by CSS selector.
func CSS(selector string) Locator { return Locator{Kind: ByCSS, Value: selector} }

// ID locates by element id.
func ID(id string) Locator { return Locator{Kind: ByID, Value: id} }

// Name locates by the name attribute.
func Name(name string) Locator { return Locator{Kind: ByName, Value: name} }

// LinkText locates an anchor by its exact visible text.
func LinkText(text string) Locator { return Locator{Kind: ByLinkText, Value: text} }

// XPath locates by XPath expression.
func XPath(expr string) Locator { return Locator{Kind: ByXPath, Value: expr} }

func (l Locator) String() string {
	switch l.Kind {
	case ByID:
		return fmt.Sprintf("id=%s", l.Value)
	case ByName:
		return fmt.Sprintf("name=%s", l.Value)
	case ByLinkText:
		return fmt.Sprintf("link=%q", l.Value)
	case ByXPath:
		return fmt.Sprintf("xpath=%s", l.Value)
	default:
		return fmt.Sprintf("css=%s", l.Value)
	}
}
