package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/vishwajitvm/tracenest/internal/controller"
	"github.com/vishwajitvm/tracenest/internal/model"
)

// Renderer writes a computed ViewModel to an output stream.
type Renderer interface {
	Render(vm controller.ViewModel) error
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	styleDebug   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	styleHeader  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)  // cyan
	styleMeta    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
)

// TextRenderer prints a page of records with severity-based colors.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes colorized text to stdout.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{w: os.Stdout}
}

func (r *TextRenderer) Render(vm controller.ViewModel) error {
	header := fmt.Sprintf("%s — page %d/%d (%d matching, %d total)",
		vm.Source, vm.Page, vm.TotalPages, vm.TotalFiltered, vm.Stats.TotalLines)
	if _, err := fmt.Fprintln(r.w, styleHeader.Render(header)); err != nil {
		return err
	}

	if vm.Err != "" {
		if _, err := fmt.Fprintln(r.w, styleError.Render("error: "+vm.Err)); err != nil {
			return err
		}
	}

	for _, rec := range vm.Records {
		line := fmt.Sprintf("%s %s %s %s",
			styleMeta.Render(rec.Timestamp),
			styleLevelTag(rec.Level),
			styleMeta.Render("["+rec.Environment+"]"),
			rec.Message,
		)
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}

	return nil
}

func styleLevelTag(level model.Level) string {
	padded := fmt.Sprintf("%-7s", level)
	switch level {
	case model.LevelDebug:
		return styleDebug.Render(padded)
	case model.LevelWarning:
		return styleWarning.Render(padded)
	case model.LevelError:
		return styleError.Render(padded)
	default:
		return styleInfo.Render(padded)
	}
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints each record of the page as one JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON lines to stdout.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(os.Stdout)}
}

func (r *JSONRenderer) Render(vm controller.ViewModel) error {
	for _, rec := range vm.Records {
		if err := r.enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
