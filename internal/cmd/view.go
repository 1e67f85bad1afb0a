package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vishwajitvm/tracenest/internal/classify"
	"github.com/vishwajitvm/tracenest/internal/controller"
	"github.com/vishwajitvm/tracenest/internal/model"
	"github.com/vishwajitvm/tracenest/internal/output"
	"github.com/vishwajitvm/tracenest/internal/stats"
	"github.com/vishwajitvm/tracenest/internal/view"
)

var (
	levelFilter string
	searchTerm  string
	pageNum     int
)

var viewCmd = &cobra.Command{
	Use:   "view <source>",
	Short: "Render one page of a classified, filtered log source",
	Long: `Fetch a source's raw lines, classify each line, apply level and
search filters, and print one page of the result.

Examples:
  tracenest view 2026-01-12.log
  tracenest view app.log --level error,warning --search payment
  tracenest view app.log --page 3 --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVarP(&levelFilter, "level", "l", "", "filter by severity (comma-separated: error,warning,info,debug)")
	viewCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "case-insensitive substring filter")
	viewCmd.Flags().IntVarP(&pageNum, "page", "p", 1, "1-based page number")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	name := args[0]

	if pageNum < 1 {
		return fmt.Errorf("page %d out of range: pages are numbered from 1", pageNum)
	}

	lines, err := newReader().ReadLines(cmd.Context(), name, viper.GetInt("max_lines"))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	records := make([]model.LogRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, classify.Classify(line))
	}

	state := model.FilterState{
		ActiveLevels: parseLevelSet(levelFilter),
		SearchTerm:   strings.ToLower(searchTerm),
	}
	filtered := view.Filter(records, state)
	pg := view.Paginate(filtered, pageNum, viper.GetInt("page_size"))

	if pageNum > pg.TotalPages {
		return fmt.Errorf("page %d out of range [1, %d]", pageNum, pg.TotalPages)
	}

	active := make([]model.Level, 0, len(state.ActiveLevels))
	for _, lvl := range model.Levels {
		if state.ActiveLevels[lvl] {
			active = append(active, lvl)
		}
	}

	vm := controller.ViewModel{
		State:         controller.StateReady,
		Source:        name,
		Records:       pg.Records,
		Page:          pg.Number,
		TotalPages:    pg.TotalPages,
		TotalFiltered: pg.TotalCount,
		PageSize:      viper.GetInt("page_size"),
		ActiveLevels:  active,
		SearchTerm:    state.SearchTerm,
		Stats:         stats.Collect(name, records),
	}

	var renderer output.Renderer
	switch strings.ToLower(outputFmt) {
	case "json":
		renderer = output.NewJSONRenderer()
	default:
		renderer = output.NewTextRenderer()
	}
	return renderer.Render(vm)
}

// parseLevelSet builds the active-level set from a comma-separated flag.
// Unknown tokens are reported and skipped.
func parseLevelSet(s string) map[model.Level]bool {
	set := make(map[model.Level]bool)
	if s == "" {
		return set
	}
	for _, tok := range strings.Split(s, ",") {
		lvl, ok := model.ParseLevel(tok)
		if !ok {
			logger.Warn().Str("level", tok).Msg("ignoring unknown level")
			continue
		}
		set[lvl] = true
	}
	return set
}
