package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tiendo/internal/contract"
	"github.com/alexanderramin/tiendo/internal/dates"
	"github.com/alexanderramin/tiendo/internal/domain"
	"github.com/alexanderramin/tiendo/internal/progress"
	"github.com/alexanderramin/tiendo/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// FormatProjectList renders the catalog inside a bordered box.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	if len(projects) == 0 {
		return RenderBox("Dự án", Dim("Chưa có dự án nào."))
	}

	headers := []string{"ID", "NAME", "PHASE", "START", "ACCEPTANCE"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		name := Bold(Truncate(p.Name, 48))
		if p.Archived() {
			name = Dim(Truncate(p.Name, 48) + " (lưu trữ)")
		}
		rows = append(rows, []string{
			StyleBlue.Render(p.DisplayID()),
			name,
			PhaseIndicator(progress.Evaluate(p, now).Phase),
			dateCell(p.ConstructionStartDate),
			dateCell(p.PlannedAcceptanceDate),
		})
	}
	return RenderBox("Dự án", RenderTable(headers, rows))
}

func dateCell(raw string) string {
	switch {
	case raw == "":
		return Dim("--")
	case !dates.Valid(raw):
		return StyleYellow.Render(raw)
	default:
		return raw
	}
}

// milestoneColors maps each field to the color of the task that reads it.
func milestoneColors() map[domain.MilestoneField]domain.ColorTag {
	out := make(map[domain.MilestoneField]domain.ColorTag)
	for _, s := range timeline.DefaultSlots() {
		for _, f := range s.Start {
			out[f] = s.Color
		}
		if s.End != "" {
			out[s.End] = s.Color
		}
	}
	return out
}

// FormatProjectDetail renders one project: a metadata panel beside its
// milestone table.
func FormatProjectDetail(p *domain.Project, now time.Time) string {
	left := detailPanel(p, now)
	right := milestoneTable(p, now)
	return lipgloss.JoinHorizontal(lipgloss.Top, RenderBox(p.DisplayID(), left), "  ", right)
}

func detailPanel(p *domain.Project, now time.Time) string {
	status := progress.Evaluate(p, now)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Bold(p.Name))
	fmt.Fprintf(&b, "%s %s\n", Dim("UUID"), TruncID(p.ID))
	fmt.Fprintf(&b, "%s\n", PhaseIndicator(status.Phase))
	fmt.Fprintf(&b, "%s\n", RenderProgress(status, 16))
	fmt.Fprintf(&b, "%s\n", status.Text)
	if p.Archived() {
		fmt.Fprintf(&b, "%s %s\n", Dim("Lưu trữ"), HumanTimestamp(*p.ArchivedAt))
	}

	decisions := []struct {
		label string
		a     domain.Approval
	}{
		{"Chủ trương", p.CapitalPlanApproval},
		{"PAKT", p.TechnicalPlanApproval},
		{"Dự toán", p.BudgetApproval},
	}
	for _, d := range decisions {
		if d.a.DecisionNumber == "" {
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", Dim(d.label), d.a.DecisionNumber)
	}
	return strings.TrimRight(b.String(), "\n")
}

func milestoneTable(p *domain.Project, now time.Time) string {
	colors := milestoneColors()
	var rows [][]string
	for _, f := range domain.MilestoneFields {
		raw := p.Milestone(f)
		if raw == "" {
			continue
		}
		when := ""
		if t, ok := dates.Parse(raw); ok {
			when = Dim(RelativeDays(t, now))
		} else {
			raw = StyleYellow.Render(raw + " ?")
		}
		marker := Dim("·")
		if tag, ok := colors[f]; ok {
			marker = TagStyle(tag).Render("●")
		}
		rows = append(rows, []string{marker, f.Label(), raw, when})
	}
	if len(rows) == 0 {
		return Dim("Chưa có mốc thời gian.")
	}
	return RenderTable([]string{"", "MILESTONE", "DATE", ""}, rows)
}

// FormatImportResult summarises an import run.
func FormatImportResult(res *contract.ImportResult) string {
	var b strings.Builder
	created := res.CreatedCount()
	fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render("✔"), Bold(res.Path))
	fmt.Fprintf(&b, "  %d dự án: %d mới, %d cập nhật\n", len(res.Projects), created, len(res.Projects)-created)
	for _, ip := range res.Projects {
		tag := Dim("cập nhật")
		if ip.Created {
			tag = StyleGreen.Render("mới")
		}
		fmt.Fprintf(&b, "  %s %s %s\n", StyleBlue.Render(ip.Project.DisplayID()), ip.Project.Name, tag)
	}
	if len(res.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range res.Warnings {
			b.WriteString(StyleYellow.Render("  WARNING: "+w.String()) + "\n")
		}
	}
	fmt.Fprintf(&b, "%s\n", Dim("run "+TruncID(res.RunID)))
	return b.String()
}

// FormatImportRuns lists recent import runs, newest first.
func FormatImportRuns(runs []*domain.ImportRun) string {
	if len(runs) == 0 {
		return Dim("Chưa có lần nhập nào.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			TruncID(r.ID),
			HumanTimestamp(r.ImportedAt),
			r.SourcePath,
			fmt.Sprintf("%d", r.ProjectCount),
			fmt.Sprintf("%d", r.WarningCount),
		})
	}
	return Table{
		Headers: []string{"RUN", "AT", "SOURCE", "PROJECTS", "WARNINGS"},
		Rows:    rows,
		Right:   map[int]bool{3: true, 4: true},
	}.Render()
}
