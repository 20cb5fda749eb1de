package report

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"github.com/marinops/fleetcheck/internal/core/assets"
	"github.com/marinops/fleetcheck/internal/core/catalog"
	"github.com/marinops/fleetcheck/internal/core/inspection"
)

const fontFamily = "report"

// Renderer produces the PDF document artifact for finalized sessions.
type Renderer struct {
	assets     *assets.Manager
	fontPath   string
	imageWidth float64 // mm
	log        zerolog.Logger
}

// NewRenderer wires the document renderer. fontPath must point to a UTF-8
// TTF; it is loaded per render so a missing font fails the document without
// failing startup.
func NewRenderer(assets *assets.Manager, fontPath string, imageWidthMM float64, log zerolog.Logger) *Renderer {
	return &Renderer{assets: assets, fontPath: fontPath, imageWidth: imageWidthMM, log: log}
}

// block is one flowed element of the document: either a paragraph or an
// image with an optional caption.
type block struct {
	text      string
	imagePath string
	caption   string
}

// documentBlocks assembles the ordered content of the document. available
// maps a photo reference to a local path; a reference it cannot resolve is
// omitted along with its caption, leaving the text intact.
func documentBlocks(cat *catalog.Catalog, sess *inspection.Session, available func(ref string) (string, bool)) []block {
	blocks := []block{
		{text: "Vessel inspection report"},
		{text: fmt.Sprintf("Inspector: %s", cat.InspectorName(sess.Inspector))},
		{text: fmt.Sprintf("Entity: %s", sess.Entity)},
		{text: fmt.Sprintf("Vessel: %s", sess.Ship)},
		{text: fmt.Sprintf("Date: %s", sess.Date.Format(inspection.DateLayout))},
		{text: fmt.Sprintf("Violations: %d", len(sess.Violations))},
	}

	for i, v := range sess.Violations {
		blocks = append(blocks, block{text: fmt.Sprintf("%d. %s", i+1, v.Description)})
		if v.PhotoRef == "" {
			continue
		}
		path, ok := available(v.PhotoRef)
		if !ok {
			continue
		}
		blocks = append(blocks, block{imagePath: path, caption: v.Caption})
	}

	return blocks
}

// RenderDocument renders the session into PDF bytes. A missing or unusable
// font aborts the whole document; missing photo assets degrade to text-only
// silently. The session is never mutated.
func (r *Renderer) RenderDocument(ctx context.Context, cat *catalog.Catalog, sess *inspection.Session) ([]byte, error) {
	if _, err := os.Stat(r.fontPath); err != nil {
		return nil, fmt.Errorf("load report font: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8Font(fontFamily, "", r.fontPath)
	if pdf.Err() {
		return nil, fmt.Errorf("load report font: %w", pdf.Error())
	}
	pdf.SetFont(fontFamily, "", 12)
	pdf.AddPage()

	blocks := documentBlocks(cat, sess, func(ref string) (string, bool) {
		if r.assets.Ensure(ctx, ref) {
			return r.assets.Path(ref), true
		}
		r.log.Debug().Str("ref", ref).Msg("photo not available, omitting from document")
		return "", false
	})

	for _, b := range blocks {
		if b.imagePath == "" {
			pdf.MultiCell(0, 6, b.text, "", "L", false)
			pdf.Ln(2)
			continue
		}
		pdf.ImageOptions(b.imagePath, pdf.GetX(), pdf.GetY(), r.imageWidth, 0, true, fpdf.ImageOptions{}, 0, "")
		pdf.Ln(3)
		if b.caption != "" {
			pdf.MultiCell(0, 6, b.caption, "", "L", false)
			pdf.Ln(2)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render document: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return buf.Bytes(), nil
}
