package config

type Bot struct {
	Token string `env:"BOT_TOKEN,required"`

	// AnnouncementChatID is the channel new sales get published to.
	// Zero disables announcements.
	AnnouncementChatID int64 `env:"BOT_ANNOUNCEMENT_CHAT_ID"`
}
