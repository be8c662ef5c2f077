package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"certwatch/internal/application/ingest"
	"certwatch/internal/resolver"
)

// sampleCandidates feeds --test runs so the pipeline can be exercised
// without touching crt.sh or DNS.
var sampleCandidates = []string{
	"secure-paypal-login.com",
	"amazon-account-verify.net",
	"googl3.com",
	"microsft-support.com",
	"bank-secure-login.org",
	"crypto-wallet-recovery.io",
	"netflix-password-reset.com",
	"faceb00k-verify.com",
	"apple-id-confirm.net",
	"coinbase-support-help.com",
	"legitimate-website.com",
	"random-domain.org",
}

// staticOracle replaces live DNS in test mode: no MX, resolvable.
type staticOracle struct {
	mx    bool
	hasIP bool
}

func (o staticOracle) HasMX(ctx context.Context, domain string) bool { return o.mx }
func (o staticOracle) HasA(ctx context.Context, domain string) bool  { return o.hasIP }

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch recent CT certificates, flag suspicious domains and persist them",
	Long: `Query crt.sh for certificates issued inside the recency window, classify
every new hostname against the keyword and brand lexicons, enrich the
suspicious ones with MX/A lookups, score them and append them to the
tracked history. Afterwards the history is trimmed to the retention cap
and the JSON feed plus per-domain warning pages are rewritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		testMode, _ := cmd.Flags().GetBool("test")
		ctx := cmd.Context()

		repo, err := openRepository()
		if err != nil {
			return err
		}

		lex := buildLexicon()

		var candidates []string
		var oracle ingest.DNSOracle
		if testMode {
			fmt.Println(colorInfo("Test mode: using built-in sample domains"))
			candidates = sampleCandidates
			oracle = staticOracle{mx: false, hasIP: true}
		} else {
			candidates, err = buildCTClient(lex).FetchCandidates(ctx)
			if err != nil {
				return fmt.Errorf("fetch candidates: %w", err)
			}
			oracle = resolver.New(time.Duration(viper.GetInt("dns.timeout_secs")) * time.Second)
		}

		svc := ingest.NewService(
			buildClassifier(lex),
			buildWeights(),
			oracle,
			repo,
			logger,
			ingest.WithRetention(viper.GetInt("retention")),
		)

		sum, err := svc.Ingest(ctx, candidates)
		if err != nil {
			return err
		}

		records, err := repo.All(ctx)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		// Rendering failures are operator-visible but never undo the
		// already-persisted results.
		renderer := newRenderer()
		if err := renderer.WriteFeed(records); err != nil {
			logger.Errorw("failed to write feed", "error", err)
			fmt.Println(colorWarn("Warning: feed.json was not updated"))
		}
		pages := renderer.WritePages(records)

		fmt.Println(colorSuccess("Update complete."))
		fmt.Printf("%s %d candidates, %d already tracked, %d clean\n",
			colorInfo("Processed:"), sum.Candidates, sum.Skipped, sum.Clean)
		fmt.Printf("%s %d new suspicious domains (%d trimmed, %d pages written)\n",
			colorInfo("Added:"), sum.Added, sum.Dropped, pages)
		fmt.Printf("%s %d\n", colorInfo("Total tracked:"), len(records))

		return nil
	},
}

func init() {
	updateCmd.Flags().Bool("test", false, "use the built-in sample domain set instead of querying crt.sh")
}
