// Package notifier pushes marketplace events to a discord channel.
package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/viney-shih/goroutines"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/log"
	"github.com/color-xyz/goapi/base/pricefmt"
	"github.com/color-xyz/goapi/domain/listing"
)

type DiscordNotifierCfg struct {
	BotKey    string
	ChannelId string
	// Workers bounds concurrent sends. Defaults to 4.
	Workers int
}

type discordNotifier struct {
	discord   *discordgo.Session
	channelId string
	pool      *goroutines.Pool
}

// NewDiscordNotifier builds an emitter that sends listing events as
// channel embeds. Sends are queued to a worker pool so Emit never
// blocks the purchase path.
func NewDiscordNotifier(cfg *DiscordNotifierCfg) (listing.EventEmitter, error) {
	discord, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.BotKey))
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	return &discordNotifier{
		discord:   discord,
		channelId: cfg.ChannelId,
		pool:      goroutines.NewPool(workers),
	}, nil
}

func (n *discordNotifier) Emit(c ctx.Ctx, ev listing.Event) {
	msg := n.buildMessage(c, ev)
	if msg == nil {
		return
	}
	err := n.pool.Schedule(func() {
		if _, err := n.discord.ChannelMessageSendEmbed(n.channelId, msg); err != nil {
			c.WithFields(log.Fields{"err": err, "eventId": ev.EventId}).Warn("discord send failed")
		}
	})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "eventId": ev.EventId}).Warn("notify pool schedule failed")
	}
}

func (n *discordNotifier) buildMessage(c ctx.Ctx, ev listing.Event) *discordgo.MessageEmbed {
	var title string
	switch ev.Type {
	case listing.EventListingCreated:
		title = "Item listed!"
	case listing.EventListingSold:
		title = "Item sold!"
	case listing.EventListingRemoved:
		title = "Listing removed"
	case listing.EventListingPriceUpdated:
		title = "Listing price updated"
	default:
		c.WithField("type", ev.Type).Warn("unknown event type")
		return nil
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Token", Value: fmt.Sprintf("%s #%s", ev.ContractAddress, ev.TokenId)},
		{Name: "Seller", Value: string(ev.Seller)},
	}
	if !ev.Buyer.IsEmpty() {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Buyer", Value: string(ev.Buyer)})
	}
	if len(ev.Price) > 0 {
		if display, err := pricefmt.FromWeiString(ev.Price); err == nil {
			fields = append(fields, &discordgo.MessageEmbedField{Name: "Price", Value: display.String() + " ETH"})
		}
	}
	if ev.Amount > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Amount", Value: fmt.Sprintf("%d", ev.Amount)})
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("%s listing #%d", listing.Name, ev.ListingId),
		Fields:      fields,
	}
}
