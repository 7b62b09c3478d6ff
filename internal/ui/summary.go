package ui

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mediapress/core/converter"
	"mediapress/core/state"
)

var bytePrinter = message.NewPrinter(language.English)

// FormatBytes renders a byte count with thousands grouping.
func FormatBytes(n int64) string {
	return bytePrinter.Sprintf("%d B", n)
}

// RenderSummary prints the per-item result table and the aggregate line
// for one finished run. Items render in batch order.
func RenderSummary(batch *converter.Batch, results converter.BatchResult) {
	rows := pterm.TableData{{"File", "Status", "Detail"}}

	for _, item := range batch.Items {
		result := results[item.SourcePath]
		if result.Success {
			detail := result.OutputPath
			if item.Kind == converter.KindVideo {
				detail = fmt.Sprintf("%s (%.2f%% saved)", result.OutputPath, result.CompressionRatio)
			}
			rows = append(rows, []string{item.DisplayName, pterm.Green("ok"), detail})
		} else {
			rows = append(rows, []string{item.DisplayName, pterm.Red("failed"), result.ErrorMessage})
		}
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	succeeded, failed := results.Succeeded(), results.Failed()
	if failed == 0 {
		pterm.Success.Printf("%d of %d files processed\n", succeeded, batch.Len())
	} else {
		pterm.Warning.Printf("%d succeeded, %d failed\n", succeeded, failed)
	}
}

// RenderHistory prints past runs, newest first.
func RenderHistory(records []*state.RunRecord) {
	if len(records) == 0 {
		pterm.Info.Println("no recorded runs")
		return
	}

	rows := pterm.TableData{{"ID", "When", "Kind", "Files", "OK", "Failed"}}
	for _, rec := range records {
		rows = append(rows, []string{
			rec.ID,
			rec.EndTime.Format("2006-01-02 15:04:05"),
			string(rec.Kind),
			strconv.Itoa(rec.TotalFiles),
			strconv.Itoa(rec.Succeeded),
			strconv.Itoa(rec.Failed),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// RenderRunDetail prints one recorded run's full result map.
func RenderRunDetail(rec *state.RunRecord) {
	pterm.DefaultSection.Printf("run %s (%s)\n", rec.ID, rec.Kind)

	rows := pterm.TableData{{"Source", "Status", "Detail"}}
	for source, result := range rec.Results {
		if result.Success {
			detail := result.OutputPath
			if result.InputSize > 0 {
				detail = fmt.Sprintf("%s (%s -> %s)", result.OutputPath,
					FormatBytes(result.InputSize), FormatBytes(result.OutputSize))
			}
			rows = append(rows, []string{source, pterm.Green("ok"), detail})
		} else {
			rows = append(rows, []string{source, pterm.Red("failed"), result.ErrorMessage})
		}
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
