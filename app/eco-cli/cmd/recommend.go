package cmd

import (
	"fmt"
	"io"

	"ecoRecommend/business/recommendation"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank products from a JSON request read on stdin",
	Long: `Reads a request of the form

  {"products": [...], "type": "cold_start"|"personalized",
   "user_data": {"age": 25, "gender": "male", "cart_items": [...],
                 "wishlist_items": [...], "viewed_products": [...]},
   "limit": 20}

from stdin and writes the ranked products to stdout as a JSON list.
On failure {"error": "..."} is written to stderr and the exit status is 1.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	err := recommend(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		_ = json.NewEncoder(cmd.ErrOrStderr()).Encode(map[string]string{"error": err.Error()})
	}
	return err
}

func recommend(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	ranker := recommendation.NewRanker(recommendation.DefaultConfig())
	recs, err := ranker.Process(data)
	if err != nil {
		return err
	}

	return json.NewEncoder(out).Encode(recs)
}
