package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
	"parts-matching-client/internal/refresh"
	"parts-matching-client/internal/services"
)

var (
	ordersActive  bool
	ordersStatus  []string
	ordersUrgency string
	ordersWatch   bool

	newOrder    dto.CreateOrderRequest
	newOrderPNs []string
	newOrderQty int
	newOrderLat string
	newOrderLng string
)

var ordersCmd = &cobra.Command{
	Use:     "orders",
	Aliases: []string{"order"},
	Short:   "List, place and track parts orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	Long: `Lists orders. --active keeps only orders that are neither delivered nor
cancelled; --watch re-polls every poll interval (10s by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var res *refresh.Resource[[]domain.OrderView]
		if ordersActive {
			res = services.NewActiveOrders(api)
		} else {
			res = services.NewOrderList(api, dto.OrderFilter{Status: ordersStatus, Urgency: ordersUrgency})
		}
		return show(cmd.Context(), cmd.OutOrStdout(), res, ordersWatch, cfg.PollInterval, renderOrders)
	},
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <order-id>",
	Short: "Show an order with its lines and delivery route",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := services.NewOrderDetail(api, api, args[0])
		return show(cmd.Context(), cmd.OutOrStdout(), res, ordersWatch, cfg.PollInterval, renderOrderDetail)
	},
}

var ordersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Place an emergency parts order",
	Example: `  partsctl orders create --part B-6204 --qty 2 --urgency critical --address "Plant 4, Dock 2"
  partsctl orders create --part X1 --part X2 --address "Plant 4" --lat 33.45 --lng -112.07`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := newOrder
		for _, pn := range newOrderPNs {
			req.Items = append(req.Items, dto.CreateOrderItem{PartNumber: strings.TrimSpace(pn), Quantity: newOrderQty})
		}
		if newOrderLat != "" || newOrderLng != "" {
			c, err := dto.ParseCoordinates(newOrderLat, newOrderLng)
			if err != nil {
				return err
			}
			req.Latitude, req.Longitude = &c.Latitude, &c.Longitude
		}

		o, err := api.CreateOrder(cmd.Context(), req)
		if err != nil {
			return err
		}
		return renderOrders(cmd.OutOrStdout(), []domain.OrderView{services.ToOrderView(o)})
	},
}

var ordersCancelCmd = &cobra.Command{
	Use:   "cancel <order-id>",
	Short: "Cancel an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.CancelOrder(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order %s cancelled.\n", args[0])
		return nil
	},
}

var ordersAcceptCmd = &cobra.Command{
	Use:   "accept <order-id> <assignment-id>",
	Short: "Accept a proposed supplier assignment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.AcceptAssignment(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Assignment %s accepted.\n", args[1])
		return nil
	},
}

var ordersRejectCmd = &cobra.Command{
	Use:   "reject <order-id> <assignment-id>",
	Short: "Reject a proposed supplier assignment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.RejectAssignment(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Assignment %s rejected.\n", args[1])
		return nil
	},
}

var ordersCandidatesCmd = &cobra.Command{
	Use:   "candidates <order-id>",
	Short: "List supplier candidates found by the matcher",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cands, err := api.MatchCandidates(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), cands,
			[]string{"SUPPLIER", "PART", "SCORE", "DISTANCE", "PRICE", "ETA"},
			func() [][]string {
				rows := make([][]string, 0, len(cands))
				for _, c := range cands {
					rows = append(rows, []string{
						c.SupplierBusinessName, c.PartNumber, fmt.Sprintf("%.2f", c.Score),
						fmtOptFloat(c.DistanceKm, "%.1f km"), fmtOptFloat(c.Price, "%.2f"), fmtETA(c.EstimatedMinutes),
					})
				}
				return rows
			})
	},
}

var ordersMatchCmd = &cobra.Command{
	Use:   "match <order-id>",
	Short: "Re-run supplier matching for an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := api.RunMatching(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return renderOrders(cmd.OutOrStdout(), []domain.OrderView{services.ToOrderView(o)})
	},
}

func fmtOptFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func init() {
	ordersListCmd.Flags().BoolVar(&ordersActive, "active", false, "Only orders still in progress")
	ordersListCmd.Flags().StringSliceVar(&ordersStatus, "status", nil, "Filter by status (repeatable)")
	ordersListCmd.Flags().StringVar(&ordersUrgency, "urgency", "", "Filter by urgency")
	ordersListCmd.Flags().BoolVarP(&ordersWatch, "watch", "w", false, "Keep polling and re-render")
	ordersShowCmd.Flags().BoolVarP(&ordersWatch, "watch", "w", false, "Keep polling and re-render")

	f := ordersCreateCmd.Flags()
	f.StringSliceVar(&newOrderPNs, "part", nil, "Part number (repeatable)")
	f.IntVar(&newOrderQty, "qty", 1, "Quantity per part")
	f.StringVar(&newOrder.Urgency, "urgency", string(domain.UrgencyStandard), "critical, urgent or standard")
	f.StringVar(&newOrder.DeliveryAddress, "address", "", "Delivery address")
	f.StringVar(&newOrder.Notes, "notes", "", "Notes for suppliers")
	f.StringVar(&newOrderLat, "lat", "", "Delivery latitude")
	f.StringVar(&newOrderLng, "lng", "", "Delivery longitude")

	ordersCmd.AddCommand(ordersListCmd, ordersShowCmd, ordersCreateCmd, ordersCancelCmd,
		ordersAcceptCmd, ordersRejectCmd, ordersCandidatesCmd, ordersMatchCmd)
	rootCmd.AddCommand(ordersCmd)
}
