package cmd

import (
	"pressroom/cmd/client/cmd/auth"
	"pressroom/cmd/client/cmd/channel"
	"pressroom/cmd/client/cmd/fund"
	"pressroom/cmd/client/cmd/news"
	"pressroom/cmd/client/cmd/notification"
	"pressroom/cmd/client/cmd/prefs"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.WhoamiCmd)
	auth.AuthCmd.AddCommand(auth.RefreshCmd)

	rootCmd.AddCommand(news.NewsCmd)
	news.NewsCmd.AddCommand(news.ListCmd)
	news.NewsCmd.AddCommand(news.GetCmd)

	rootCmd.AddCommand(channel.ChannelCmd)
	channel.ChannelCmd.AddCommand(channel.ListCmd)
	channel.ChannelCmd.AddCommand(channel.SubscribeCmd)
	channel.ChannelCmd.AddCommand(channel.UnsubscribeCmd)

	rootCmd.AddCommand(notification.NotificationCmd)
	notification.NotificationCmd.AddCommand(notification.ListCmd)
	notification.NotificationCmd.AddCommand(notification.CountCmd)
	notification.NotificationCmd.AddCommand(notification.ReadCmd)
	notification.NotificationCmd.AddCommand(notification.ReadAllCmd)
	notification.NotificationCmd.AddCommand(notification.DeleteCmd)
	notification.NotificationCmd.AddCommand(notification.WatchCmd)

	rootCmd.AddCommand(fund.FundCmd)

	rootCmd.AddCommand(prefs.PrefsCmd)
	prefs.PrefsCmd.AddCommand(prefs.ShowCmd)
	prefs.PrefsCmd.AddCommand(prefs.SetCmd)
}
