package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/taskdeck/internal/model"
)

// renderAnalytics builds the analytics page from the current snapshot: a
// bar chart of tasks per board column plus completion counts.
func (a App) renderAnalytics() string {
	board := model.GroupByStatus(a.snap.Tasks)
	completed := model.CompletedTasks(a.snap.Tasks)
	active := model.ActiveTasks(a.snap.Tasks)

	chartWidth := a.width - 12
	if chartWidth < 24 {
		chartWidth = 24
	}
	chartHeight := a.height - 12
	if chartHeight < 6 {
		chartHeight = 6
	}
	if chartHeight > 14 {
		chartHeight = 14
	}

	chart := barchart.New(chartWidth, chartHeight)
	chart.PushAll([]barchart.BarData{
		barData(a.tr("todo"), len(board.Todo), a.styles.warning),
		barData(a.tr("inprogress"), len(board.InProgress), a.styles.selected),
		barData(a.tr("complete"), len(board.Complete), a.styles.success),
	})
	chart.Draw()

	stats := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s: %d", a.tr("completed"), len(completed)),
		fmt.Sprintf("Active: %d", len(active)),
		fmt.Sprintf("%s: %d%%", a.tr("taskProgress"), model.AverageProgress(a.snap.Tasks)),
		fmt.Sprintf("%s: %d", a.tr("project"), len(a.snap.Projects)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.title.Render(a.tr("analytics")),
		"",
		chart.View(),
		"",
		a.styles.panel.Render(stats),
	)
}

func barData(label string, count int, style lipgloss.Style) barchart.BarData {
	return barchart.BarData{
		Label: label,
		Values: []barchart.BarValue{
			{Name: label, Value: float64(count), Style: style},
		},
	}
}
