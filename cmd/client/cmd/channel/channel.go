package channel

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pressroom/cmd/client/cmd/types"
	"pressroom/internal/app/client/api"
	"pressroom/internal/app/client/call"
	"pressroom/internal/app/client/paging"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

var (
	page       int
	limit      int
	sort       string
	search     string
	category   string
	subscribed bool
	mine       bool
	all        bool
)

var ChannelCmd = &cobra.Command{
	Use:     "channel",
	Aliases: []string{"channels"},
	Short:   "Каналы и подписки",
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список каналов",
	Long: `Постраничный список каналов.

С флагом --all страницы догружаются до конца списка.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.From(cmd)
		if err != nil {
			return err
		}
		if (subscribed || mine) && !env.App.Authenticated() {
			return env.RequireAuth()
		}

		filter := api.ChannelFilter{
			Search:     search,
			Category:   category,
			Sort:       sort,
			Subscribed: subscribed,
			Mine:       mine,
		}
		caller := env.App.Caller()
		loader := paging.NewOffsetLoader(func(ctx context.Context, req pagination.OffsetRequest) (*pagination.OffsetPage[model.Channel], error) {
			return call.Run(ctx, caller, func(ctx context.Context) (*pagination.OffsetPage[model.Channel], error) {
				return env.App.APIs().Channels().GetChannels(ctx, filter, req)
			})
		}, limit)

		var meta pagination.OffsetMeta
		if all {
			if err := loader.Reload(cmd.Context()); err != nil {
				return err
			}
			for loader.HasMore() {
				if err := loader.LoadMore(cmd.Context()); err != nil {
					return err
				}
			}
			meta = loader.Meta()
		} else {
			res, err := call.Run(cmd.Context(), caller, func(ctx context.Context) (*pagination.OffsetPage[model.Channel], error) {
				return env.App.APIs().Channels().GetChannels(ctx, filter, pagination.OffsetRequest{Page: page, Limit: limit})
			})
			if err != nil {
				return err
			}
			return printChannels(env, res.Items, res.Meta)
		}
		return printChannels(env, loader.Items(), meta)
	},
}

func printChannels(env *types.Env, items []model.Channel, meta pagination.OffsetMeta) error {
	out := struct {
		Items []model.Channel         `json:"items"`
		Meta  pagination.OffsetMeta `json:"metadata"`
	}{items, meta}

	return env.Print(out, func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "SLUG\tНАЗВАНИЕ\tКАТЕГОРИЯ\tПОДПИСЧИКИ\tПОДПИСКА")
		for _, c := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", c.Slug, c.Name, c.Category, c.Subscribers, types.YesNo(c.Subscribed))
		}
		fmt.Fprintf(w, "\nПоказано %d из %d\n", len(items), meta.Total)
	})
}

func subscription(on bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := types.From(cmd)
		if err != nil {
			return err
		}
		if err := env.RequireAuth(); err != nil {
			return err
		}

		state, err := call.Run(cmd.Context(), env.App.Caller(), func(ctx context.Context) (*api.SubscriptionState, error) {
			channels := env.App.APIs().Channels()
			if on {
				return channels.Subscribe(ctx, args[0])
			}
			return channels.Unsubscribe(ctx, args[0])
		})
		if err != nil {
			return err
		}

		if on {
			env.Success("Подписка оформлена, подписчиков: %d", state.Subscribers)
		} else {
			env.Success("Подписка отменена, подписчиков: %d", state.Subscribers)
		}
		if env.JSON {
			return env.Print(state, nil)
		}
		return nil
	}
}

var SubscribeCmd = &cobra.Command{
	Use:   "subscribe <id|slug>",
	Short: "Подписаться на канал",
	Args:  cobra.ExactArgs(1),
	RunE:  subscription(true),
}

var UnsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe <id|slug>",
	Short: "Отписаться от канала",
	Args:  cobra.ExactArgs(1),
	RunE:  subscription(false),
}

func init() {
	ListCmd.Flags().IntVarP(&page, "page", "p", 1, "номер страницы")
	ListCmd.Flags().IntVarP(&limit, "limit", "l", pagination.DefaultLimit, "размер страницы")
	ListCmd.Flags().StringVar(&sort, "sort", "", "сортировка: popular, latest, name")
	ListCmd.Flags().StringVarP(&search, "search", "s", "", "поиск по названию")
	ListCmd.Flags().StringVar(&category, "category", "", "категория")
	ListCmd.Flags().BoolVar(&subscribed, "subscribed", false, "только мои подписки")
	ListCmd.Flags().BoolVar(&mine, "mine", false, "только мои каналы")
	ListCmd.Flags().BoolVarP(&all, "all", "a", false, "загрузить все страницы")
}
