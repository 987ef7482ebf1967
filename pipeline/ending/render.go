package ending

import (
	"io"

	"github.com/pterm/pterm"

	"github.com/cloudenochcsis/Volatility-Script/common"
	"github.com/cloudenochcsis/Volatility-Script/time"
	"github.com/cloudenochcsis/Volatility-Script/util"
)

const maxOutputWidth = 60

// Render writes the report table and summary to w.
func Render(w io.Writer, report *Report) error {
	rows := pterm.TableData{
		{"MODULE", "STEP", "STATE", "TIME", "DETAIL"},
	}
	for _, res := range report.Results() {
		detail := res.Output
		if res.Err != nil {
			detail = res.Err.Error()
		}
		rows = append(rows, []string{
			res.Module,
			res.Step,
			stateStyle(res.State).Sprint(res.StateLabel()),
			time.HumanDur(res.Elapsed),
			util.TruncateString(detail, maxOutputWidth, "..."),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(rows).Render(); err != nil {
		return err
	}

	for _, warning := range report.Warnings() {
		pterm.Warning.WithWriter(w).Printfln("%s: %s", warning.Source, warning.Message)
	}

	summary := pterm.Info.WithWriter(w)
	switch report.Status {
	case RunSucceeded:
		summary = pterm.Success.WithWriter(w)
	case RunFailed, RunAborted:
		summary = pterm.Error.WithWriter(w)
	}
	summary.Println(report.SummaryLine())
	return nil
}

func stateStyle(state common.OperationState) *pterm.Style {
	switch state {
	case common.StateSuccess:
		return pterm.NewStyle(pterm.FgGreen)
	case common.StateFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case common.StateSkipped:
		return pterm.NewStyle(pterm.FgGray)
	default:
		return pterm.NewStyle(pterm.FgCyan)
	}
}
