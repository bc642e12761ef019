package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/xvierd/startpage/internal/commands"
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/panels"
)

// panelsCmd lists every panel with the triggers that open it.
var panelsCmd = &cobra.Command{
	Use:   "panels",
	Short: "List panels, their search triggers and escape priority",
	Long: `List every panel with the search words that open it. Escape closes open
panels one per press, lowest priority number first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmdTable := app.desk.Table()
		out := cmd.OutOrStdout()

		if jsonOutput {
			list := make([]map[string]interface{}, 0)
			for _, id := range domain.AllPanels() {
				list = append(list, map[string]interface{}{
					"id":              id.String(),
					"title":           id.Title(),
					"triggers":        panelTriggers(cmdTable, id),
					"escape_priority": panels.EscapeRank(id) + 1,
				})
			}
			return printJSON(out, map[string]interface{}{"panels": list})
		}

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			Headers("PANEL", "TITLE", "ESC", "TRIGGERS")
		for _, id := range domain.AllPanels() {
			triggers := strings.Join(panelTriggers(cmdTable, id), ", ")
			if id == domain.PanelToolbar {
				triggers = "ctrl+b"
			}
			t.Row(id.String(), id.Title(), fmt.Sprint(panels.EscapeRank(id)+1), triggers)
		}
		_, err := fmt.Fprintln(out, t.Render())
		return err
	},
}

// panelTriggers returns the triggers that open id, including special actions
// that open it as a side effect.
func panelTriggers(t *commands.Table, id domain.PanelID) []string {
	triggers := t.TriggersFor(commands.Open(id))
	switch id {
	case domain.PanelMusic:
		triggers = append(triggers, t.TriggersFor(commands.Do(commands.SpecialOpenMusic))...)
	case domain.PanelLexicon:
		triggers = append(triggers, t.TriggersFor(commands.Do(commands.SpecialOpenLexicon))...)
	case domain.PanelPomodoro:
		triggers = append(triggers, t.TriggersFor(commands.Do(commands.SpecialStartTimer))...)
	}
	if triggers == nil {
		triggers = []string{}
	}
	return triggers
}
