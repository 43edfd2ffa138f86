package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
	"parts-matching-client/internal/services"
)

var (
	delFilter dto.DeliveryFilter
	delWatch  bool
	locLat    string
	locLng    string
	locHead   float64
)

var deliveriesCmd = &cobra.Command{
	Use:     "deliveries",
	Aliases: []string{"delivery"},
	Short:   "Follow deliveries and report courier positions",
}

var deliveriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deliveries",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := services.NewDeliveries(api, delFilter)
		return show(cmd.Context(), cmd.OutOrStdout(), res, delWatch, cfg.PollInterval, renderDeliveries)
	},
}

var deliveriesShowCmd = &cobra.Command{
	Use:   "show <delivery-id>",
	Short: "Show one delivery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := api.GetDelivery(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return renderDeliveries(cmd.OutOrStdout(), []domain.DeliveryView{services.ToDeliveryView(d)})
	},
}

var deliveriesLocateCmd = &cobra.Command{
	Use:   "locate <delivery-id>",
	Short: "Report the courier's current position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dto.ParseCoordinates(locLat, locLng)
		if err != nil {
			return err
		}

		req := dto.UpdateLocationRequest{Coordinates: c}
		if cmd.Flags().Changed("heading") {
			req.Heading = &locHead
		}
		if err := api.UpdateDeliveryLocation(cmd.Context(), args[0], req); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Location of delivery %s updated.\n", args[0])
		return nil
	},
}

func init() {
	lf := deliveriesListCmd.Flags()
	lf.StringVar(&delFilter.OrderID, "order", "", "Only deliveries serving this order")
	lf.StringVar(&delFilter.Status, "status", "", "Filter by status")
	lf.BoolVarP(&delWatch, "watch", "w", false, "Keep polling and re-render")

	f := deliveriesLocateCmd.Flags()
	f.StringVar(&locLat, "lat", "", "Latitude")
	f.StringVar(&locLng, "lng", "", "Longitude")
	f.Float64Var(&locHead, "heading", 0, "Heading in degrees")
	_ = deliveriesLocateCmd.MarkFlagRequired("lat")
	_ = deliveriesLocateCmd.MarkFlagRequired("lng")

	deliveriesCmd.AddCommand(deliveriesListCmd, deliveriesShowCmd, deliveriesLocateCmd)
	rootCmd.AddCommand(deliveriesCmd)
}
