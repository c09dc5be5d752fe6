package auth

import (
	"context"

	"github.com/spf13/cobra"

	"pressroom/cmd/client/cmd/types"
	"pressroom/internal/app/client/call"
	"pressroom/internal/model"
)

var loginEmail string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему",
	Long: `Аутентификация на сервере.

После входа сессия сохраняется локально, профиль и настройки
синхронизируются с сервером.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.From(cmd)
		if err != nil {
			return err
		}

		email := prompt("Email: ", loginEmail)
		password, err := readPassword("Пароль: ")
		if err != nil {
			return err
		}

		user, err := call.Run(cmd.Context(), env.App.Caller(), func(ctx context.Context) (*model.User, error) {
			return env.App.Login(ctx, email, password)
		})
		if err != nil {
			return err
		}

		env.Success("Вход выполнен: %s (%s)", user.Username, user.Role)
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email учетной записи")
}
