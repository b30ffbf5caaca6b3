package cmd

import (
	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/ml-explorer/internal/api/client"
)

func searchCmd() *cobra.Command {
	var params apiclient.ProductsParams

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the Mercado Livre catalog",
		Long: "Searches through the API server. Without --session, or when the\n" +
			"marketplace cannot be reached, the server answers with demo products.",
		Example: `  mlx search "placa de vídeo"
  mlx search notebook --brand dell --seller 123456
  mlx search celular --session 3f1c... --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				params.Query = args[0]
			}

			resp, err := newClient().Products(cmd.Context(), params)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), resp)
			}
			return printProducts(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&params.Brand, "brand", "", "keep only products whose brand contains this text")
	cmd.Flags().StringVar(&params.SellerID, "seller", "", "restrict results to a seller id")

	return cmd
}
