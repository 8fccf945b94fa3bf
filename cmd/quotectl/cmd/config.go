package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minnmarket/storefront-backend/internal/quote"
	"github.com/minnmarket/storefront-backend/pkg/config"
)

func newConfigCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective pricing and delivery settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cfg()
			p := c.Pricing.Engine()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "exchange_rate=%s\n", p.ExchangeRate)
			fmt.Fprintf(out, "rate_display=%s\n", quote.RateDisplay(p))
			fmt.Fprintf(out, "service_percent=%s\n", p.ServicePercent)
			fmt.Fprintf(out, "fixed_fee=%s\n", p.FixedFee)
			fmt.Fprintf(out, "shipping_fee=%s\n", p.ShippingFee)
			fmt.Fprintf(out, "display_scale=%d\n", p.DisplayScale)
			fmt.Fprintf(out, "operator=@%s\n", strings.TrimPrefix(c.Telegram.OperatorHandle, "@"))
			fmt.Fprintf(out, "bridge_enabled=%t\n", c.Telegram.BridgeEnabled())
			fmt.Fprintf(out, "fallback_on_bridge_error=%t\n", c.Submit.FallbackOnBridgeError)
			return nil
		},
	}
}
