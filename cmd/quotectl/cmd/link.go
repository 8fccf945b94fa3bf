package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minnmarket/storefront-backend/internal/gateway"
	"github.com/minnmarket/storefront-backend/internal/submission"
	"github.com/minnmarket/storefront-backend/pkg/config"
)

func newLinkCmd(cfg func() *config.Config) *cobra.Command {
	var (
		kind      string
		calc      calcFlags
		order     submission.ContactForm
		skipCheck bool
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Build the operator deep link a submission falls back to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cfg()
			links, err := gateway.NewLinkBuilder(c.Telegram.LinkDomain, c.Telegram.OperatorHandle)
			if err != nil {
				return err
			}

			var payload submission.Payload
			switch submission.Kind(kind) {
			case submission.KindCalc:
				payload, err = calc.payload(c.Pricing.Engine())
				if err != nil {
					return err
				}
			case submission.KindOrder:
				payload = submission.NewOrder(order)
			default:
				return fmt.Errorf("unknown type %q, want calc or order", kind)
			}

			if !skipCheck {
				if err := payload.Ready(); err != nil {
					return fmt.Errorf("%w: missing %v", err, payload.Missing())
				}
			}

			text, err := payload.Serialize()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), links.Build(text))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", string(submission.KindOrder), "submission type: calc or order")
	cmd.Flags().BoolVar(&skipCheck, "skip-check", false, "build the link even when required fields are empty")
	calc.bind(cmd)
	cmd.Flags().StringVar(&order.Name, "name", "", "order: name")
	cmd.Flags().StringVar(&order.Phone, "phone", "", "order: phone")
	cmd.Flags().StringVar(&order.Username, "username", "", "order: telegram username")
	cmd.Flags().StringVar(&order.City, "city", "", "order: city")
	cmd.Flags().StringVar(&order.Comment, "comment", "", "order: comment")
	cmd.Flags().BoolVar(&order.Prepay, "prepay", true, "order: prepayment accepted")
	return cmd
}
