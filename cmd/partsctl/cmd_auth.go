package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/services"
)

var (
	loginEmail    string
	loginPassword string

	registerReq dto.RegisterRequest
	registerLat string
	registerLng string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Long: `Signs in with email and password and stores the token and profile in the
session store. The password may also come from $PARTS_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			password = os.Getenv("PARTS_PASSWORD")
		}

		res, err := api.Login(cmd.Context(), dto.LoginRequest{Email: strings.TrimSpace(loginEmail), Password: password})
		if err != nil {
			return err
		}
		if err := sessions.Save(cmd.Context(), res.AuthToken(), res.User); err != nil {
			return err
		}
		return renderUser(cmd.OutOrStdout(), services.ToSessionUser(res.User))
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a buyer or supplier account and sign in",
	Example: `  partsctl register --email ops@plant.io --password s3cret --role buyer --factory "Plant 4"
  partsctl register --email sales@acme.io --password s3cret --role supplier --business Acme --lat 33.45 --lng -112.07`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := registerReq
		if registerLat != "" || registerLng != "" {
			c, err := dto.ParseCoordinates(registerLat, registerLng)
			if err != nil {
				return err
			}
			req.Latitude, req.Longitude = &c.Latitude, &c.Longitude
		}

		res, err := api.Register(cmd.Context(), req)
		if err != nil {
			return err
		}
		if err := sessions.Save(cmd.Context(), res.AuthToken(), res.User); err != nil {
			return err
		}
		return renderUser(cmd.OutOrStdout(), services.ToSessionUser(res.User))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The local session is cleared even when the backend call fails.
		remoteErr := api.Logout(cmd.Context())
		if err := sessions.Clear(cmd.Context()); err != nil {
			return err
		}
		if remoteErr != nil {
			return fmt.Errorf("signed out locally: %w", remoteErr)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in profile",
	Long: `Shows the stored profile. With --refresh the profile is re-read from the
backend and stored again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := sessions.Current(ctx)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("not signed in (run partsctl login)")
		}

		refresh, _ := cmd.Flags().GetBool("refresh")
		user := s.User
		if refresh {
			if user, err = api.Me(ctx); err != nil {
				return err
			}
			if err := sessions.Save(ctx, s.Token, user); err != nil {
				return err
			}
		}

		if err := renderUser(cmd.OutOrStdout(), services.ToSessionUser(user)); err != nil {
			return err
		}
		if s.ExpiresAt != nil && !outputJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "token expires: %s\n", s.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
		if s.Expired(time.Now()) {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: the stored token has expired; run partsctl login")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")

	f := registerCmd.Flags()
	f.StringVar(&registerReq.Email, "email", "", "Account email")
	f.StringVar(&registerReq.Password, "password", "", "Account password")
	f.StringVar(&registerReq.Role, "role", "buyer", "buyer or supplier")
	f.StringVar(&registerReq.FactoryName, "factory", "", "Factory name (buyers)")
	f.StringVar(&registerReq.BusinessName, "business", "", "Business name (suppliers)")
	f.StringVar(&registerReq.Phone, "phone", "", "Contact phone")
	f.StringVar(&registerLat, "lat", "", "Latitude")
	f.StringVar(&registerLng, "lng", "", "Longitude")

	whoamiCmd.Flags().Bool("refresh", false, "Re-read the profile from the backend")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
