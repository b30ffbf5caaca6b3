package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/ml-explorer/internal/mercadolivre"
	"github.com/donaldgifford/ml-explorer/pkg/logger"
)

type searchFlags struct {
	accessToken  string
	refreshToken string
	sellerID     string
	brand        string
	jsonOutput   bool
}

func searchCommand() *cobra.Command {
	var f searchFlags

	c := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog directly, without the server",
		Long: "Runs one catalog search with the given tokens. Without an access " +
			"token, or when the marketplace fails, demo products are printed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, &f)
		},
	}
	c.Flags().StringVar(&f.accessToken, "token", "", "access token (use mock-token for demo data)")
	c.Flags().StringVar(&f.refreshToken, "refresh-token", "", "refresh token used when the access token has expired")
	c.Flags().StringVar(&f.sellerID, "seller", "", "restrict results to a seller id")
	c.Flags().StringVar(&f.brand, "brand", "", "keep only products whose brand contains this text")
	c.Flags().BoolVar(&f.jsonOutput, "json", false, "print JSON instead of a table")

	return c
}

func runSearch(cmd *cobra.Command, args []string, f *searchFlags) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	catalog, _ := newCatalog(cfg, newAuthService(cfg, log), log)

	query := mercadolivre.DefaultQuery
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		query = args[0]
	}

	var slot mercadolivre.TokenSlot
	if f.accessToken != "" {
		slot = mercadolivre.NewMemorySlot(mercadolivre.Token{
			AccessToken:  f.accessToken,
			RefreshToken: f.refreshToken,
		})
	}

	res := catalog.Search(cmd.Context(), slot, query, f.sellerID)
	res.Products = mercadolivre.FilterByBrand(res.Products, f.brand)

	if f.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return printSearchResult(cmd.OutOrStdout(), &res)
}

func printSearchResult(w io.Writer, res *mercadolivre.SearchResult) error {
	if res.Mock {
		if _, err := fmt.Fprintf(w, "demo data (%s)\n", res.FallbackReason); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tBRAND\tPRICE\tIMAGE")
	for i := range res.Products {
		p := &res.Products[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %.2f\t%v\n", p.ID, p.Title, p.Brand, p.Currency, p.Price, p.HasImage)
	}
	return tw.Flush()
}
