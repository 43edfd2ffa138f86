package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
	"parts-matching-client/internal/services"
)

var (
	invFilter dto.InventoryFilter
	invInput  dto.InventoryItemInput
)

var inventoryCmd = &cobra.Command{
	Use:     "inventory",
	Aliases: []string{"inv"},
	Short:   "Browse and manage supplier inventory",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "Search the parts catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return show(cmd.Context(), cmd.OutOrStdout(), services.NewInventory(api, invFilter), false, 0, renderInventory)
	},
}

var inventoryShowCmd = &cobra.Command{
	Use:   "show <item-id>",
	Short: "Show one catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := api.GetInventoryItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return renderInventory(cmd.OutOrStdout(), []domain.InventoryItemView{services.ToInventoryView(item)})
	},
}

var inventoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a catalog entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := api.CreateInventoryItem(cmd.Context(), invInput)
		if err != nil {
			return err
		}
		return renderInventory(cmd.OutOrStdout(), []domain.InventoryItemView{services.ToInventoryView(item)})
	},
}

var inventoryUpdateCmd = &cobra.Command{
	Use:   "update <item-id>",
	Short: "Replace a catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := api.UpdateInventoryItem(cmd.Context(), args[0], invInput)
		if err != nil {
			return err
		}
		return renderInventory(cmd.OutOrStdout(), []domain.InventoryItemView{services.ToInventoryView(item)})
	},
}

var inventoryDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Delete a catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.DeleteInventoryItem(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Item %s deleted.\n", args[0])
		return nil
	},
}

var inventoryImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Bulk import catalog entries from CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("import inventory: %w", err)
		}
		defer f.Close()

		res, err := api.ImportInventoryCSV(cmd.Context(), filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), res)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created=%d updated=%d errors=%d\n", res.Created, res.Updated, len(res.Errors))
		for _, e := range res.Errors {
			fmt.Fprintln(cmd.OutOrStdout(), "  "+e)
		}
		return nil
	},
}

func init() {
	lf := inventoryListCmd.Flags()
	lf.StringVarP(&invFilter.Query, "query", "q", "", "Free-text search")
	lf.StringVar(&invFilter.SupplierID, "supplier", "", "Supplier id")
	lf.StringVar(&invFilter.Category, "category", "", "Category")

	for _, c := range []*cobra.Command{inventoryAddCmd, inventoryUpdateCmd} {
		f := c.Flags()
		f.StringVar(&invInput.PartNumber, "part", "", "Part number")
		f.StringVar(&invInput.Name, "name", "", "Display name")
		f.StringVar(&invInput.Description, "description", "", "Description")
		f.StringVar(&invInput.Category, "category", "", "Category")
		f.Float64Var(&invInput.Price, "price", 0, "Unit price")
		f.StringVar(&invInput.Currency, "currency", "", "ISO currency code")
		f.IntVar(&invInput.Quantity, "qty", 0, "Quantity on hand")
		f.IntVar(&invInput.LeadTimeHours, "lead-time", 0, "Lead time in hours")
	}

	inventoryCmd.AddCommand(inventoryListCmd, inventoryShowCmd, inventoryAddCmd,
		inventoryUpdateCmd, inventoryDeleteCmd, inventoryImportCmd)
	rootCmd.AddCommand(inventoryCmd)
}
