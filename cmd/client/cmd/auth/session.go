package auth

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pressroom/cmd/client/cmd/types"
)

var errPasswordMismatch = errors.New("пароли не совпадают")

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти и удалить локальную сессию",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.From(cmd)
		if err != nil {
			return err
		}
		if err := env.App.Logout(cmd.Context()); err != nil {
			return err
		}
		env.Success("Сессия завершена")
		return nil
	},
}

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Текущий пользователь",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.From(cmd)
		if err != nil {
			return err
		}
		if err := env.RequireAuth(); err != nil {
			return err
		}

		user := env.App.Profile().Current()
		if user == nil {
			return errors.New("профиль не загружен")
		}
		s := env.App.Session()
		return env.Print(user, func(w *tabwriter.Writer) {
			fmt.Fprintf(w, "ID:\t%s\n", user.ID)
			fmt.Fprintf(w, "Пользователь:\t%s\n", user.Username)
			fmt.Fprintf(w, "Email:\t%s\n", user.Email)
			fmt.Fprintf(w, "Роль:\t%s\n", user.Role)
			if !s.ExpiresAt().IsZero() {
				fmt.Fprintf(w, "Токен до:\t%s\n", s.ExpiresAt().Local().Format("2006-01-02 15:04:05"))
			}
		})
	},
}

var RefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Обновить access-токен",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.From(cmd)
		if err != nil {
			return err
		}
		if err := env.App.Caller().Do(cmd.Context(), env.App.Refresh); err != nil {
			return err
		}
		env.Success("Токен обновлен до %s", env.App.Session().ExpiresAt().Local().Format("15:04:05"))
		return nil
	},
}
