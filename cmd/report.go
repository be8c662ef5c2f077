package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"certwatch/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a threat summary report (markdown, HTML or PDF)",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")
		top, _ := cmd.Flags().GetInt("top")
		if top <= 0 {
			top = viper.GetInt("report.top")
		}

		repo, err := openRepository()
		if err != nil {
			return err
		}
		records, err := repo.All(cmd.Context())
		if err != nil {
			return err
		}

		data := report.BuildSummary(records, top)

		if format == "pdf" {
			if outPath == "" {
				outPath = "report.pdf"
			}
			if err := report.WriteSummaryPDF(outPath, data); err != nil {
				return fmt.Errorf("write pdf report: %w", err)
			}
			fmt.Printf("%s %s\n", colorSuccess("Report written:"), outPath)
			return nil
		}

		out := os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		if err := report.RenderSummary(out, format, data); err != nil {
			return err
		}
		if outPath != "" {
			fmt.Printf("%s %s\n", colorSuccess("Report written:"), outPath)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().String("format", "markdown", "report format: markdown, html or pdf")
	reportCmd.Flags().String("out", "", "output file (default stdout, report.pdf for pdf)")
	reportCmd.Flags().Int("top", 0, "number of top-scored domains to include")
}
