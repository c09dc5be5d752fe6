package notification

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pressroom/cmd/client/cmd/types"
	"pressroom/internal/app/client/api"
	"pressroom/internal/app/client/notifications"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/infrastructure/push"
	"pressroom/internal/model"
)

var (
	limit      int
	unreadOnly bool
	kind       string
	all        bool
)

var NotificationCmd = &cobra.Command{
	Use:     "notification",
	Aliases: []string{"notifications", "notif"},
	Short:   "Лента уведомлений",
}

// center собирает ленту команды; все вызовы идут через Caller
func center(env *types.Env) *notifications.Center {
	return env.App.NewNotificationCenter(
		notifications.WithLimit(limit),
		notifications.WithFilter(api.NotificationFilter{
			UnreadOnly: unreadOnly,
			Type:       model.NotificationType(kind),
		}),
	)
}

func authed(cmd *cobra.Command) (*types.Env, error) {
	env, err := types.From(cmd)
	if err != nil {
		return nil, err
	}
	if err := env.RequireAuth(); err != nil {
		return nil, err
	}
	return env, nil
}

func printFeed(env *types.Env, c *notifications.Center) error {
	items := c.Items()
	out := struct {
		Items  []model.Notification `json:"items"`
		Unread int                  `json:"unread"`
		More   bool                 `json:"hasMore"`
	}{items, c.Unread(), c.Feed().HasMore()}

	return env.Print(out, func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "\tID\tТИП\tЗАГОЛОВОК\tКОГДА")
		for _, n := range items {
			mark := " "
			if !n.IsRead {
				mark = color.CyanString("●")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", mark, n.ID, n.Type, n.Title, n.CreatedAt.Local().Format("01-02 15:04"))
		}
		fmt.Fprintf(w, "\nНепрочитанных: %d", out.Unread)
		if out.More {
			fmt.Fprint(w, " (есть еще, --all)")
		}
		fmt.Fprintln(w)
	})
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Лента уведомлений",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := authed(cmd)
		if err != nil {
			return err
		}
		c := center(env)
		ctx := cmd.Context()
		caller := env.App.Caller()

		if err := caller.Do(ctx, c.Refresh); err != nil {
			return err
		}
		for all && c.Feed().HasMore() {
			if err := caller.Do(ctx, c.LoadMore); err != nil {
				return err
			}
		}
		return printFeed(env, c)
	},
}

var CountCmd = &cobra.Command{
	Use:   "count",
	Short: "Счетчики непрочитанных и новых",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := authed(cmd)
		if err != nil {
			return err
		}
		c := center(env)
		if err := env.App.Caller().Do(cmd.Context(), c.RefreshCounts); err != nil {
			return err
		}
		out := map[string]int{"unread": c.Unread(), "new": c.Badge()}
		return env.Print(out, func(w *tabwriter.Writer) {
			fmt.Fprintf(w, "Непрочитанных:\t%d\n", out["unread"])
			fmt.Fprintf(w, "Новых:\t%d\n", out["new"])
		})
	},
}

var ReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Отметить уведомление прочитанным",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := authed(cmd)
		if err != nil {
			return err
		}
		err = env.App.Caller().Do(cmd.Context(), func(ctx context.Context) error {
			return env.App.APIs().Notifications().MarkAsRead(ctx, args[0])
		})
		if err != nil {
			return err
		}
		env.Success("Уведомление %s прочитано", args[0])
		return nil
	},
}

var ReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Отметить все уведомления прочитанными",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := authed(cmd)
		if err != nil {
			return err
		}
		c := center(env)
		caller := env.App.Caller()
		if err := caller.Do(cmd.Context(), c.Refresh); err != nil {
			return err
		}
		// при ошибке лента уже перечитана с сервера
		if err := caller.Do(cmd.Context(), c.MarkAllAsRead); err != nil {
			return err
		}
		env.Success("Все уведомления прочитаны")
		return nil
	},
}

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить уведомление",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := authed(cmd)
		if err != nil {
			return err
		}
		err = env.App.Caller().Do(cmd.Context(), func(ctx context.Context) error {
			return env.App.APIs().Notifications().Delete(ctx, args[0])
		})
		if err != nil {
			return err
		}
		env.Success("Уведомление %s удалено", args[0])
		return nil
	},
}

var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Следить за уведомлениями через push",
	Long: `Подписывается на push-события пользователя (нужен REDIS_ADDR)
и печатает счетчики при каждом событии. Ctrl+C завершает работу.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := authed(cmd)
		if err != nil {
			return err
		}
		src, err := env.App.PushSource(cmd.Context())
		if err != nil {
			return err
		}

		var c *notifications.Center
		c = env.App.NewNotificationCenter(
			notifications.WithLimit(limit),
			notifications.WithEventHook(func(ev push.Event) {
				fmt.Fprintf(env.Out, "%s %s %s  непрочитанных: %d, новых: %d\n",
					time.Now().Format("15:04:05"),
					color.YellowString(ev.Kind),
					ev.NotificationID,
					c.Unread(),
					c.Badge(),
				)
			}),
		)
		if err := env.App.Caller().Do(cmd.Context(), c.RefreshCounts); err != nil {
			return err
		}
		fmt.Fprintf(env.Out, "Ожидание событий... непрочитанных: %d\n", c.Unread())

		return env.App.Run(func(ctx context.Context) error {
			return c.Listen(ctx, src)
		})
	},
}

func init() {
	NotificationCmd.PersistentFlags().IntVarP(&limit, "limit", "l", pagination.DefaultLimit, "размер страницы")
	ListCmd.Flags().BoolVarP(&unreadOnly, "unread", "u", false, "только непрочитанные")
	ListCmd.Flags().StringVarP(&kind, "type", "t", "", "тип уведомления")
	ListCmd.Flags().BoolVarP(&all, "all", "a", false, "загрузить всю ленту")
}
