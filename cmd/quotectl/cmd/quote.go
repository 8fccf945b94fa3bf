package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/minnmarket/storefront-backend/internal/quote"
	"github.com/minnmarket/storefront-backend/internal/submission"
	"github.com/minnmarket/storefront-backend/pkg/config"
)

type calcFlags struct {
	price    string
	category string
	title    string
	url      string
	size     string
}

func (f *calcFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.price, "price", "", "price in the source currency, as typed")
	cmd.Flags().StringVar(&f.category, "category", "apparel", "apparel or footwear")
	cmd.Flags().StringVar(&f.title, "title", "", "product title")
	cmd.Flags().StringVar(&f.url, "url", "", "product URL")
	cmd.Flags().StringVar(&f.size, "size", "", "size")
}

func (f calcFlags) payload(pricing quote.PricingConfig) (submission.Payload, error) {
	category, err := quote.ParseCategory(f.category)
	if err != nil {
		return submission.Payload{}, err
	}
	return submission.PriceCalc(quote.QuoteInput{
		Category:     category,
		SourcePrice:  f.price,
		ProductURL:   f.url,
		ProductTitle: f.title,
		Size:         f.size,
	}, pricing), nil
}

func newQuoteCmd(cfg func() *config.Config) *cobra.Command {
	var (
		flags  calcFlags
		locale string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price calculator input",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pricing := cfg().Pricing.Engine()
			payload, err := flags.payload(pricing)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				text, err := payload.Serialize()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}

			tag, err := language.Parse(locale)
			if err != nil {
				return fmt.Errorf("invalid locale %q: %w", locale, err)
			}
			req, _ := payload.Calc()
			q := req.Quote
			fmt.Fprintf(out, "Rate:        %s\n", quote.RateDisplay(pricing))
			fmt.Fprintf(out, "Base:        %s\n", quote.FormatLocal(q.BaseLocal, pricing, tag))
			fmt.Fprintf(out, "Service fee: %s\n", quote.FormatLocal(q.ServiceFee, pricing, tag))
			fmt.Fprintf(out, "Fixed fee:   %s\n", quote.FormatLocal(q.FixedFee, pricing, tag))
			fmt.Fprintf(out, "Shipping:    %s\n", quote.FormatLocal(q.ShippingFee, pricing, tag))
			fmt.Fprintf(out, "Total:       %s\n", quote.FormatLocal(q.TotalLocal, pricing, tag))
			if missing := payload.Missing(); len(missing) > 0 {
				fmt.Fprintf(out, "Not submittable, missing: %v\n", missing)
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&locale, "locale", "ru", "display locale for amounts")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the serialized submission instead of the breakdown")
	return cmd
}
