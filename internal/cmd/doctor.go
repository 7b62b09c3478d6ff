package cmd

import (
	"os"
	"runtime"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/spf13/cobra"

	"mediapress/core/converter"
	"mediapress/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the encoder and host resources",
	Long: `Probe the external encoder and report host CPU, memory and disk
headroom. Video compression is only offered when the probe passes.`,
	Run: func(cmd *cobra.Command, args []string) {
		runDoctor()
	},
}

func runDoctor() {
	probe := converter.ProbeEncoder(mgr.Config().Tools.FFmpegPath)
	if probe.Available {
		pterm.Success.Printf("encoder available: %s\n", probe.Path)
	} else {
		pterm.Error.Printf("encoder unavailable: %s\n", probe.Diagnostic)
	}

	rows := pterm.TableData{{"Resource", "Value"}}

	cores := runtime.NumCPU()
	if physical, err := cpu.Counts(false); err == nil && physical > 0 {
		rows = append(rows, []string{"CPU", strconv.Itoa(physical) + " physical / " + strconv.Itoa(cores) + " logical cores"})
	} else {
		rows = append(rows, []string{"CPU", strconv.Itoa(cores) + " logical cores"})
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		rows = append(rows, []string{"Memory", ui.FormatBytes(int64(vm.Available)) + " available of " + ui.FormatBytes(int64(vm.Total))})
	}

	wd, err := os.Getwd()
	if err == nil {
		if usage, err := disk.Usage(wd); err == nil {
			rows = append(rows, []string{"Disk", ui.FormatBytes(int64(usage.Free)) + " free on " + wd})
		}
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
