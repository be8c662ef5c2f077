package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"certwatch/internal/score"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked suspicious domains, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		levelFilter, _ := cmd.Flags().GetString("level")
		limit, _ := cmd.Flags().GetInt("limit")

		repo, err := openRepository()
		if err != nil {
			return err
		}

		records, err := repo.All(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DOMAIN\tSCORE\tLEVEL\tMX\tBRAND\tDATE")

		shown := 0
		for i := len(records) - 1; i >= 0; i-- {
			rec := records[i]
			if levelFilter != "" && !strings.EqualFold(levelFilter, string(rec.ThreatLevel)) {
				continue
			}
			if limit > 0 && shown >= limit {
				break
			}

			mx := "no"
			if rec.MX {
				mx = "yes"
			}
			brand := "-"
			if rec.BrandMatch != nil {
				brand = *rec.BrandMatch
			}

			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
				rec.Domain,
				rec.ThreatScore,
				formatLevelWithColor(rec.ThreatLevel),
				mx,
				brand,
				rec.Date.UTC().Format(time.RFC3339),
			)
			shown++
		}

		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%s %d of %d tracked domains\n", colorInfo("Showing:"), shown, len(records))
		return nil
	},
}

func init() {
	listCmd.Flags().String("level", "", fmt.Sprintf("only show one threat level (%s, %s, %s, %s)",
		score.LevelLow, score.LevelMedium, score.LevelHigh, score.LevelCritical))
	listCmd.Flags().Int("limit", 0, "maximum rows to show (0 = all)")
}
