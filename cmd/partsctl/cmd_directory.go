package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
	"parts-matching-client/internal/services"
)

var suppliersCmd = &cobra.Command{
	Use:   "suppliers",
	Short: "List suppliers, or show one by id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var list []dto.SupplierDto
		if len(args) == 1 {
			s, err := api.GetSupplier(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			list = []dto.SupplierDto{s}
		} else {
			var err error
			if list, err = api.ListSuppliers(cmd.Context()); err != nil {
				return err
			}
		}

		return render(cmd.OutOrStdout(), list,
			[]string{"ID", "BUSINESS", "EMAIL", "PHONE", "RATING"},
			func() [][]string {
				rows := make([][]string, 0, len(list))
				for _, s := range list {
					phone := ""
					if s.Phone != nil {
						phone = *s.Phone
					}
					rows = append(rows, []string{s.ID.String(), s.BusinessName, s.Email, orDash(phone), fmtOptFloat(s.Rating, "%.1f")})
				}
				return rows
			})
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List accounts, or show one by id (admin)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var list []dto.UserDto
		if len(args) == 1 {
			u, err := api.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			list = []dto.UserDto{u}
		} else {
			var err error
			if list, err = api.ListUsers(cmd.Context()); err != nil {
				return err
			}
		}

		views := make([]domain.SessionUser, 0, len(list))
		for _, u := range list {
			views = append(views, services.ToSessionUser(u))
		}
		return render(cmd.OutOrStdout(), views,
			[]string{"ID", "ROLE", "NAME", "EMAIL"},
			func() [][]string {
				rows := make([][]string, 0, len(views))
				for _, u := range views {
					rows = append(rows, []string{u.ID, string(u.Role), u.DisplayName, u.Email})
				}
				return rows
			})
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show the analytics summary for the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")
		m, err := api.AnalyticsSummary(cmd.Context(), period)
		if err != nil {
			return err
		}
		return renderObject(cmd, m)
	},
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the admin dashboard counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := api.AdminDashboard(cmd.Context())
		if err != nil {
			return err
		}
		return renderObject(cmd, m)
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin-only views",
}

// renderObject prints an untyped object as sorted key/value rows.
func renderObject(cmd *cobra.Command, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return render(cmd.OutOrStdout(), m, []string{"KEY", "VALUE"}, func() [][]string {
		rows := make([][]string, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, []string{k, fmt.Sprint(m[k])})
		}
		return rows
	})
}

func init() {
	analyticsCmd.Flags().String("period", "", "Reporting period, e.g. 7d or 30d")

	adminCmd.AddCommand(adminDashboardCmd)
	rootCmd.AddCommand(suppliersCmd, usersCmd, analyticsCmd, adminCmd)
}
