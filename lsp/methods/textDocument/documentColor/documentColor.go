package documentcolor

import (
	"fmt"
	"math"
	"strings"

	"bennypowers.dev/shadycss/ast"
	"bennypowers.dev/shadycss/internal/log"
	"bennypowers.dev/shadycss/lsp/types"
	"bennypowers.dev/shadycss/token"
	"bennypowers.dev/shadycss/tokenizer"
	"github.com/mazznoer/csscolorparser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorFunctions are the functional notations offered to csscolorparser.
var colorFunctions = map[string]bool{
	"rgb": true, "rgba": true,
	"hsl": true, "hsla": true,
	"hwb": true, "hwba": true,
	"lab": true, "lch": true,
	"oklab": true, "oklch": true,
}

// Literal is a color found in a declaration value.
type Literal struct {
	Text  string
	Range ast.Range
	Color csscolorparser.Color
}

// DocumentColor handles the textDocument/documentColor request
func DocumentColor(req *types.RequestContext, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := params.TextDocument.URI
	log.Debug("DocumentColor requested: %s", uri)

	doc := req.Document(uri)
	if doc == nil {
		return nil, nil
	}

	mapper := doc.Mapper()
	colors := []protocol.ColorInformation{}
	for expr := range ast.Filter[*ast.Expression](doc.Stylesheet()) {
		literals, errs := Find(expr)
		for _, err := range errs {
			req.AddWarning(err)
		}
		for _, lit := range literals {
			colors = append(colors, protocol.ColorInformation{
				Range: mapper.Range(lit.Range.Start, lit.Range.End),
				Color: toProtocol(lit.Color),
			})
		}
	}

	log.Debug("Found %d colors", len(colors))
	return colors, nil
}

// ColorPresentation handles the textDocument/colorPresentation request,
// offering hex, rgb() and hsl() spellings of the picked color.
func ColorPresentation(req *types.RequestContext, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	log.Debug("ColorPresentation requested: %s", params.TextDocument.URI)

	c := fromProtocol(params.Color)
	labels := []string{c.HexString(), rgbString(c), hslString(c)}

	presentations := make([]protocol.ColorPresentation, 0, len(labels))
	for _, label := range labels {
		presentations = append(presentations, protocol.ColorPresentation{
			Label:    label,
			TextEdit: &protocol.TextEdit{Range: params.Range, NewText: label},
		})
	}
	return presentations, nil
}

// Find returns the color literals in expr: hex colors, named colors and
// color functions. Color functions that fail to parse, such as those
// containing var(), are returned as errors.
func Find(expr *ast.Expression) ([]Literal, []error) {
	var (
		literals []Literal
		errs     []error
	)
	t := tokenizer.New(expr.Text)
	cursor := tokenizer.NewCursor(t)
	for !cursor.Done() {
		tok, _ := cursor.TakeOne()
		if !tok.Is(token.Word) {
			continue
		}

		if colorFunctions[strings.ToLower(t.Slice(tok))] && cursor.NextIs(token.OpenParenthesis) {
			end, ok := closeParen(cursor)
			if !ok {
				break
			}
			text := expr.Text[tok.Start:end]
			c, err := csscolorparser.Parse(text)
			if err != nil {
				errs = append(errs, fmt.Errorf("unsupported color %q: %w", text, err))
				continue
			}
			literals = append(literals, literal(expr, text, tok.Start, c))
			continue
		}

		literals = append(literals, words(expr, t.Slice(tok), tok.Start)...)
	}
	return literals, errs
}

// closeParen consumes a parenthesized group and returns the offset just past
// its closing parenthesis.
func closeParen(cursor *tokenizer.Cursor) (int, bool) {
	depth := 0
	for !cursor.Done() {
		tok, _ := cursor.TakeOne()
		switch {
		case tok.Is(token.OpenParenthesis):
			depth++
		case tok.Is(token.CloseParenthesis):
			depth--
			if depth == 0 {
				return tok.End, true
			}
		}
	}
	return 0, false
}

// words checks each comma separated part of a word token.
func words(expr *ast.Expression, word string, start int) []Literal {
	var out []Literal
	offset := start
	for part := range strings.SplitSeq(word, ",") {
		if isColorWord(part) {
			if c, err := csscolorparser.Parse(part); err == nil {
				out = append(out, literal(expr, part, offset, c))
			}
		}
		offset += len(part) + 1
	}
	return out
}

// isColorWord rejects words csscolorparser would read as hex without a
// leading #, like "add" or "bad".
func isColorWord(word string) bool {
	if strings.HasPrefix(word, "#") {
		return len(word) > 1
	}
	if word == "" {
		return false
	}
	allHex := true
	for _, r := range word {
		switch {
		case r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		case r >= 'g' && r <= 'z', r >= 'G' && r <= 'Z':
			allHex = false
		default:
			return false
		}
	}
	return !allHex
}

func literal(expr *ast.Expression, text string, offset int, c csscolorparser.Color) Literal {
	start := expr.Range.Start + offset
	return Literal{
		Text:  text,
		Range: ast.Range{Start: start, End: start + len(text)},
		Color: c,
	}
}

func toProtocol(c csscolorparser.Color) protocol.Color {
	return protocol.Color{
		Red:   protocol.Decimal(c.R),
		Green: protocol.Decimal(c.G),
		Blue:  protocol.Decimal(c.B),
		Alpha: protocol.Decimal(c.A),
	}
}

func fromProtocol(c protocol.Color) csscolorparser.Color {
	return csscolorparser.Color{
		R: float64(c.Red),
		G: float64(c.Green),
		B: float64(c.Blue),
		A: float64(c.Alpha),
	}
}

func rgbString(c csscolorparser.Color) string {
	channel := func(v float64) int { return int(math.Round(v * 255)) }
	r, g, b := channel(c.R), channel(c.G), channel(c.B)
	if c.A >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, trimFloat(c.A))
}

func hslString(c csscolorparser.Color) string {
	h, s, l := hsl(c.R, c.G, c.B)
	if c.A >= 1 {
		return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", h, s*100, l*100)
	}
	return fmt.Sprintf("hsla(%.0f, %.0f%%, %.0f%%, %s)", h, s*100, l*100, trimFloat(c.A))
}

// hsl converts rgb channels in [0, 1] to hue in degrees and saturation and
// lightness in [0, 1].
func hsl(r, g, b float64) (h, s, l float64) {
	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	l = (hi + lo) / 2
	if hi == lo {
		return 0, 0, l
	}

	d := hi - lo
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60, s, l
}

func trimFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", f), "0"), ".")
}
