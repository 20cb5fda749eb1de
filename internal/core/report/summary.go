// Package report turns a finalized inspection session into a plain-text
// summary and a PDF document artifact.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/marinops/fleetcheck/internal/core/catalog"
	"github.com/marinops/fleetcheck/internal/core/inspection"
)

// Summary is the plain-text rendering of a finalized session plus the photo
// references to emit as standalone image messages, in violation order.
type Summary struct {
	Text   string
	Photos []string
}

// BuildSummary renders the ordered text summary. It never fails: it reads
// only in-memory session data.
func BuildSummary(cat *catalog.Catalog, sess *inspection.Session) Summary {
	var b strings.Builder
	b.WriteString("Vessel inspection report\n")
	fmt.Fprintf(&b, "Inspector: %s\n", cat.InspectorName(sess.Inspector))
	fmt.Fprintf(&b, "Entity: %s\n", sess.Entity)
	fmt.Fprintf(&b, "Vessel: %s\n", sess.Ship)
	fmt.Fprintf(&b, "Date: %s\n", sess.Date.Format(inspection.DateLayout))
	fmt.Fprintf(&b, "Violations: %d\n", len(sess.Violations))

	var photos []string
	for i, v := range sess.Violations {
		fmt.Fprintf(&b, "\n%d. %s", i+1, v.Description)
		if v.PhotoRef != "" {
			photos = append(photos, v.PhotoRef)
		}
	}

	return Summary{Text: b.String(), Photos: photos}
}

// ArtifactName derives the document name from the inspection date, with the
// date separators replaced so the name is filesystem-safe. Two reports for
// the same date deliberately collide on the same name.
func ArtifactName(date time.Time) string {
	return "inspection_" + date.Format("02-01-2006") + ".pdf"
}
