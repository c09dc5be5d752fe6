package news

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pressroom/cmd/client/cmd/types"
	"pressroom/internal/app/client/api"
	"pressroom/internal/app/client/call"
	"pressroom/internal/domain/pagination"
	"pressroom/internal/model"
)

var (
	page     int
	limit    int
	sort     string
	category string
	search   string
	tags     []string
	featured bool
)

var NewsCmd = &cobra.Command{
	Use:   "news",
	Short: "Лента новостей",
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список новостей",
	Long: `Постраничный список опубликованных новостей.

Сортировка: latest, trending, popular, oldest.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.From(cmd)
		if err != nil {
			return err
		}

		filter := api.NewsFilter{
			Search:   search,
			Category: category,
			Tags:     tags,
			Sort:     sort,
			Featured: featured,
		}
		req := pagination.OffsetRequest{Page: page, Limit: limit}

		res, err := call.Run(cmd.Context(), env.App.Caller(), func(ctx context.Context) (*pagination.OffsetPage[model.News], error) {
			return env.App.APIs().News().GetNews(ctx, filter, req)
		})
		if err != nil {
			return err
		}

		return env.Print(res, func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "SLUG\tЗАГОЛОВОК\tКАТЕГОРИЯ\tТЕГИ\tПРОСМОТРЫ")
			for _, n := range res.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", n.Slug, n.Title, n.Category, strings.Join(n.Tags, ","), n.Views)
			}
			fmt.Fprintf(w, "\nСтраница %d из %d, всего %d\n", res.Meta.CurrentPage, res.Meta.PageCount, res.Meta.Total)
		})
	},
}

var GetCmd = &cobra.Command{
	Use:   "get <id|slug>",
	Short: "Новость по id или slug",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := types.From(cmd)
		if err != nil {
			return err
		}

		n, err := call.Run(cmd.Context(), env.App.Caller(), func(ctx context.Context) (*model.News, error) {
			return env.App.APIs().News().GetBySlug(ctx, args[0])
		})
		if err != nil {
			return err
		}

		return env.Print(n, func(w *tabwriter.Writer) {
			fmt.Fprintf(w, "ID:\t%s\n", n.ID)
			fmt.Fprintf(w, "Заголовок:\t%s\n", n.Title)
			fmt.Fprintf(w, "Категория:\t%s\n", n.Category)
			fmt.Fprintf(w, "Теги:\t%s\n", strings.Join(n.Tags, ", "))
			fmt.Fprintf(w, "Статус:\t%s\n", n.Status)
			fmt.Fprintf(w, "Создана:\t%s\n", n.CreatedAt.Local().Format("2006-01-02 15:04"))
			if n.Summary != "" {
				fmt.Fprintf(w, "\n%s\n", n.Summary)
			}
		})
	},
}

func init() {
	ListCmd.Flags().IntVarP(&page, "page", "p", 1, "номер страницы")
	ListCmd.Flags().IntVarP(&limit, "limit", "l", pagination.DefaultLimit, "размер страницы")
	ListCmd.Flags().StringVar(&sort, "sort", "", "сортировка")
	ListCmd.Flags().StringVar(&category, "category", "", "категория")
	ListCmd.Flags().StringVarP(&search, "search", "s", "", "поиск по заголовку")
	ListCmd.Flags().StringSliceVar(&tags, "tag", nil, "фильтр по тегам")
	ListCmd.Flags().BoolVar(&featured, "featured", false, "только избранные")
}
