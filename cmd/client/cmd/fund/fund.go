package fund

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pressroom/cmd/client/cmd/types"
	"pressroom/internal/app/client/call"
	"pressroom/internal/model"
)

var FundCmd = &cobra.Command{
	Use:   "fund <content-type> <content-id>",
	Short: "Сбор средств, привязанный к контенту",
	Long: `Показывает сбор для новости, канала или опроса.

Отсутствие сбора не является ошибкой.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := types.From(cmd)
		if err != nil {
			return err
		}

		f, err := call.Run(cmd.Context(), env.App.Caller(), func(ctx context.Context) (*model.Fund, error) {
			return env.App.APIs().Funding().GetFundForContent(ctx, args[0], args[1])
		})
		if err != nil {
			return err
		}
		if f == nil {
			if env.JSON {
				return env.Print(nil, nil)
			}
			fmt.Fprintln(env.Out, "Сбора нет")
			return nil
		}

		return env.Print(f, func(w *tabwriter.Writer) {
			fmt.Fprintf(w, "ID:\t%s\n", f.ID)
			fmt.Fprintf(w, "Название:\t%s\n", f.Title)
			fmt.Fprintf(w, "Собрано:\t%s из %s %s\n", amount(f.Raised), amount(f.Goal), f.Currency)
			fmt.Fprintf(w, "Активен:\t%s\n", types.YesNo(f.Active))
		})
	},
}

// amount печатает сумму в минорных единицах
func amount(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
