package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pressroom/cmd/client/cmd/types"
	"pressroom/internal/model"
)

var PrefsCmd = &cobra.Command{
	Use:     "prefs",
	Aliases: []string{"preferences"},
	Short:   "Настройки клиента",
	Long: `Настройки хранятся локально и синхронизируются с сервером,
когда есть сессия.`,
}

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать настройки",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := types.From(cmd)
		if err != nil {
			return err
		}
		m := env.App.Preferences()
		p := m.Get()

		return env.Print(p, func(w *tabwriter.Writer) {
			fmt.Fprintf(w, "theme:\t%s (%s)\n", p.Theme, m.Theme())
			fmt.Fprintf(w, "language:\t%s\n", p.Language)
			fmt.Fprintf(w, "page-size:\t%d\n", p.PageSize)
			fmt.Fprintf(w, "email-digest:\t%s\n", types.YesNo(p.EmailDigest))
			fmt.Fprintf(w, "sound:\t%s\n", types.YesNo(p.NotificationSound))
			fmt.Fprintf(w, "синхронизированы:\t%s\n", types.YesNo(m.Synced()))
		})
	},
}

var SetCmd = &cobra.Command{
	Use:   "set <key>=<value>...",
	Short: "Изменить настройки",
	Long: `Ключи: theme (light|dark|system), language, page-size,
email-digest, sound.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := types.From(cmd)
		if err != nil {
			return err
		}

		changes := make([]func(p *model.Preferences), 0, len(args))
		for _, arg := range args {
			change, err := parse(arg)
			if err != nil {
				return err
			}
			changes = append(changes, change)
		}

		p, err := env.App.Preferences().Update(cmd.Context(), env.App.Authenticated(), func(p *model.Preferences) {
			for _, change := range changes {
				change(p)
			}
		})
		if err != nil {
			return err
		}
		if env.JSON {
			return env.Print(p, nil)
		}
		env.Success("Настройки сохранены")
		if env.App.Authenticated() && !env.App.Preferences().Synced() {
			fmt.Fprintln(env.Out, "Сервер недоступен, изменения уйдут при следующем входе")
		}
		return nil
	},
}

func parse(arg string) (func(p *model.Preferences), error) {
	key, value, ok := strings.Cut(arg, "=")
	if !ok {
		return nil, fmt.Errorf("ожидается key=value: %q", arg)
	}
	value = strings.TrimSpace(value)

	switch strings.ToLower(strings.TrimSpace(key)) {
	case "theme":
		return func(p *model.Preferences) { p.Theme = model.ThemeMode(value) }, nil
	case "language", "lang":
		return func(p *model.Preferences) { p.Language = value }, nil
	case "page-size", "pagesize":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("page-size: %w", err)
		}
		return func(p *model.Preferences) { p.PageSize = n }, nil
	case "email-digest":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("email-digest: %w", err)
		}
		return func(p *model.Preferences) { p.EmailDigest = b }, nil
	case "sound":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("sound: %w", err)
		}
		return func(p *model.Preferences) { p.NotificationSound = b }, nil
	}
	return nil, fmt.Errorf("неизвестная настройка %q", key)
}
