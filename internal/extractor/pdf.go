package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// wordGap is the horizontal distance, in points, above which two text pieces
// on the same row are separated by a space.
const wordGap = 15

// pageRenderer turns one page into newline-separated rows. ok is false when
// the renderer cannot read the page, and the page is then left out.
type pageRenderer func(page pdf.Page) (text string, ok bool)

// renderers are tried in order until one of them yields readable text.
// Statement PDFs differ in how their text objects are laid out, so a layout
// that defeats the library's row grouping can still be rebuilt from raw
// coordinates or read as plain text.
var renderers = []pageRenderer{
	renderRows,
	renderCoordinates,
	renderPlain,
}

// PDF extracts page text with the ledongthuc/pdf library.
type PDF struct{}

// ExtractPages returns the text of each page in the PDF, one line per row.
func (PDF) ExtractPages(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	if len(data) == 0 {
		return nil, errors.New("empty PDF")
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	if r.NumPage() == 0 {
		return nil, errors.New("PDF has no pages")
	}

	for _, render := range renderers {
		if pages = eachPage(r, render); hasText(pages) {
			return pages, nil
		}
	}
	return nil, errors.New("no readable text in PDF; it may be image-based or scanned")
}

// eachPage renders every non-null page in document order.
func eachPage(r *pdf.Reader, render pageRenderer) []string {
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		if text, ok := render(page); ok {
			pages = append(pages, text)
		}
	}
	return pages
}

// renderRows uses the library's own row grouping.
func renderRows(page pdf.Page) (string, bool) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", false
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		words := make([]string, 0, len(row.Content))
		for _, w := range row.Content {
			words = append(words, w.S)
		}
		lines = append(lines, strings.Join(words, " "))
	}
	return joinRows(lines), true
}

// renderCoordinates rebuilds rows from positioned text: pieces sharing a
// rounded Y belong to one row, read left to right, top row first.
func renderCoordinates(page pdf.Page) (string, bool) {
	texts := page.Content().Text
	if len(texts) == 0 {
		return "", false
	}

	byY := make(map[int][]pdf.Text)
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			y := int(math.Round(t.Y))
			byY[y] = append(byY[y], t)
		}
	}

	ys := make([]int, 0, len(byY))
	for y := range byY {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	lines := make([]string, 0, len(ys))
	for _, y := range ys {
		lines = append(lines, joinPieces(byY[y]))
	}
	return joinRows(lines), true
}

// joinPieces concatenates one row's pieces by X, inserting a space across gaps
// wider than wordGap.
func joinPieces(pieces []pdf.Text) string {
	sort.Slice(pieces, func(a, b int) bool { return pieces[a].X < pieces[b].X })

	var sb strings.Builder
	for i, p := range pieces {
		if i > 0 && p.X-pieces[i-1].X > wordGap {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.S)
	}
	return sb.String()
}

func renderPlain(page pdf.Page) (string, bool) {
	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		f := page.Font(name)
		fonts[name] = &f
	}
	text, err := page.GetPlainText(fonts)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(text), true
}

// joinRows trims each row and drops the empty ones.
func joinRows(rows []string) string {
	kept := rows[:0]
	for _, row := range rows {
		if row = strings.TrimSpace(row); row != "" {
			kept = append(kept, row)
		}
	}
	return strings.Join(kept, "\n")
}

func hasText(pages []string) bool {
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return true
		}
	}
	return false
}
