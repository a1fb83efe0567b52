// Package notify is the admin notification transport. The engine only
// appends rows to admin_notifications; this client carries them out.
package notify

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Client struct {
	Bot *tgbotapi.BotAPI
}

func NewClient(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Client{Bot: bot}, nil
}

// Broadcast sends the message to every chat. The first send error aborts so
// the caller can retry the whole notification later.
func (c *Client) Broadcast(chatIDs []int64, text string) error {
	for _, id := range chatIDs {
		msg := tgbotapi.NewMessage(id, text)
		if _, err := c.Bot.Send(msg); err != nil {
			return err
		}
	}
	return nil
}
