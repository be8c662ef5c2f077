package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"certwatch/internal/score"
)

var scanCmd = &cobra.Command{
	Use:   "scan <domain> [domain...]",
	Short: "Classify and score domains offline (no DNS, no history writes)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex := buildLexicon()
		classifier := buildClassifier(lex)
		weights := buildWeights()

		for _, arg := range args {
			domain := strings.ToLower(strings.TrimSpace(arg))
			verdict := classifier.Classify(domain)

			if !verdict.Suspicious {
				fmt.Printf("%s  %s\n", colorSuccess("clean     "), domain)
				continue
			}

			input := score.Input{Keywords: verdict.Keywords}
			if verdict.Brand != nil {
				input.BrandSimilarity = verdict.Brand.Similarity
			}
			threatScore := weights.Score(input)
			level := score.LevelFor(threatScore)

			fmt.Printf("%s  %s  score=%d level=%s\n",
				colorError("suspicious"), domain, threatScore, formatLevelWithColor(level))
			if len(verdict.Keywords) > 0 {
				fmt.Printf("            keywords: %s\n", strings.Join(verdict.Keywords, ", "))
			}
			if verdict.Brand != nil {
				fmt.Printf("            brand: %s (%.0f%% match)\n",
					verdict.Brand.Brand, verdict.Brand.Similarity*100)
			}
		}

		return nil
	},
}
