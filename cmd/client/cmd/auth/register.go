package auth

import (
	"context"

	"github.com/spf13/cobra"

	"pressroom/cmd/client/cmd/types"
	"pressroom/internal/app/client/call"
	"pressroom/internal/model"
)

var (
	registerEmail    string
	registerUsername string
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.From(cmd)
		if err != nil {
			return err
		}

		req := model.RegisterRequest{
			Email:    prompt("Email: ", registerEmail),
			Username: prompt("Имя пользователя: ", registerUsername),
		}
		if req.Password, err = readPassword("Пароль: "); err != nil {
			return err
		}
		confirm, err := readPassword("Повторите пароль: ")
		if err != nil {
			return err
		}
		if confirm != req.Password {
			return errPasswordMismatch
		}

		user, err := call.Run(cmd.Context(), env.App.Caller(), func(ctx context.Context) (*model.User, error) {
			return env.App.Register(ctx, req)
		})
		if err != nil {
			return err
		}

		env.Success("Пользователь %s зарегистрирован", user.Username)
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "email")
	RegisterCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "имя пользователя")
}
