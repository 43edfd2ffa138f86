package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"parts-matching-client/internal/adapters/realtime"
	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
	"parts-matching-client/internal/refresh"
	"parts-matching-client/internal/services"
)

var readAll bool

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "Read marketplace notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications (unread marked with *)",
	RunE: func(cmd *cobra.Command, args []string) error {
		feed := services.NewNotificationFeed(api, cfg.Notifications.SurfaceErrors)
		snap := feed.Refetch(cmd.Context())
		if snap.State == refresh.Failed {
			return fmt.Errorf("%s", snap.Err)
		}
		if err := renderNotifications(cmd.OutOrStdout(), snap.Data); err != nil {
			return err
		}
		if !outputJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d unread\n", services.UnreadCount(snap.Data))
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read [notification-id]",
	Short: "Mark one notification, or --all, as read",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if readAll == (len(args) == 1) {
			return fmt.Errorf("pass exactly one of a notification id or --all")
		}

		// Read marks are explicit user actions, so failures are always reported.
		feed := services.NewNotificationFeed(api, true)
		if readAll {
			return feed.MarkAllRead(cmd.Context())
		}
		return feed.MarkRead(cmd.Context(), args[0])
	},
}

var notificationsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream notifications as they arrive",
	Long: `Loads the notification list, then prints every notification pushed over
the realtime channel. The list is also re-polled every poll interval.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		feed := services.NewNotificationFeed(api, cfg.Notifications.SurfaceErrors)
		feed.Refetch(ctx)
		if err := renderNotifications(out, feed.Snapshot().Data); err != nil {
			return err
		}

		rt, err := realtime.New(realtime.Config{URL: cfg.WSURL}, sessions)
		if err != nil {
			return err
		}
		rt.OnNotification(func(n dto.NotificationDto) {
			feed.HandleEvent(n)
			v := services.ToNotificationView(n)
			if outputJSON {
				_ = printJSON(out, v)
				return
			}
			_ = renderNotifications(out, []domain.NotificationView{v})
		})

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return rt.Run(gctx) })
		g.Go(func() error {
			feed.PollAfter(gctx, cfg.PollInterval)
			return nil
		})

		zap.L().Debug("watching notifications", zap.String("ws_url", cfg.WSURL))
		return g.Wait()
	},
}

func init() {
	notificationsReadCmd.Flags().BoolVar(&readAll, "all", false, "Mark every notification as read")

	notificationsCmd.AddCommand(notificationsListCmd, notificationsReadCmd, notificationsWatchCmd)
	rootCmd.AddCommand(notificationsCmd)
}
