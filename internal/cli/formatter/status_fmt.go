package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/progress"
)

const statusProgressBarWidth = 10

// FormatStatus formats a StatusResponse into the status board.
func FormatStatus(resp *contract.StatusResponse) string {
	var b strings.Builder

	headers := []string{"ID", "NAME", "PHASE", "PROGRESS", "ACCEPTANCE", "NEXT"}
	rows := make([][]string, 0, len(resp.Projects))
	for _, p := range resp.Projects {
		rows = append(rows, []string{
			StyleBlue.Render(p.ShortID),
			Bold(Truncate(p.Name, 40)),
			PhaseIndicator(p.Status.Phase),
			RenderProgress(p.Status, statusProgressBarWidth),
			acceptanceCell(p, resp.GeneratedAt),
			nextCell(p),
		})
	}
	if len(rows) == 0 {
		b.WriteString(Dim("Chưa có dự án nào. Dùng `tiendo project import` để nạp danh mục."))
		b.WriteString("\n")
	} else {
		b.WriteString(RenderTable(headers, rows))
	}

	b.WriteString("\n")
	b.WriteString(summaryLine(resp.Summary))
	b.WriteString("\n")

	return RenderBox("Tiến độ", b.String())
}

func acceptanceCell(p contract.ProjectStatusView, now time.Time) string {
	if p.PlannedAcceptance == "" {
		return Dim("--")
	}
	t, ok := dates.Parse(p.PlannedAcceptance)
	if !ok {
		return StyleYellow.Render(p.PlannedAcceptance)
	}
	switch p.Status.Phase {
	case progress.PhaseOnTrack, progress.PhaseDueSoon, progress.PhaseOverdue:
		return fmt.Sprintf("%s %s", p.PlannedAcceptance, RelativeDaysStyled(t, now))
	default:
		return p.PlannedAcceptance
	}
}

func nextCell(p contract.ProjectStatusView) string {
	if p.NextMilestone == "" {
		return Dim("--")
	}
	return fmt.Sprintf("%s %s", p.NextMilestone, Dim(p.NextMilestoneDate))
}

func summaryLine(s contract.GlobalStatusSummary) string {
	parts := []string{
		StyleRed.Render(fmt.Sprintf("%d trễ hạn", s.Overdue)),
		StyleYellow.Render(fmt.Sprintf("%d sắp đến hạn", s.DueSoon)),
		StyleGreen.Render(fmt.Sprintf("%d đúng tiến độ", s.Counts[progress.PhaseOnTrack])),
	}
	if n := s.Counts[progress.PhaseSettled] + s.Counts[progress.PhaseSettling]; n > 0 {
		parts = append(parts, StylePurple.Render(fmt.Sprintf("%d quyết toán", n)))
	}
	return fmt.Sprintf("%s  %s", strings.Join(parts, ", "), Dim(fmt.Sprintf("(tổng %d)", s.Total)))
}
