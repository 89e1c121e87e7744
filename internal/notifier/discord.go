package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/tourism-api/internal/models"
)

type BookingEventKind string

const (
	BookingCreated       BookingEventKind = "created"
	BookingStatusChanged BookingEventKind = "status changed"
)

type BookingEvent struct {
	Kind           BookingEventKind
	User           models.User
	Hotel          models.Hotel
	Booking        models.Booking
	PreviousStatus models.BookingStatus
}

type Notifier interface {
	NotifyBooking(event BookingEvent) error
}

// MessageSender is the part of a discordgo session the notifier uses.
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   MessageSender
	channelID string
}

func NewDiscordNotifier(session MessageSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyBooking(event BookingEvent) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, FormatBookingEvent(event))
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}

func FormatBookingEvent(event BookingEvent) string {
	b := event.Booking
	status := string(b.Status)
	if event.Kind == BookingStatusChanged {
		status = fmt.Sprintf("%s → %s", event.PreviousStatus, b.Status)
	}

	return fmt.Sprintf("🏨 **Booking %s**\n**Booking:** #%d\n**Guest:** %s (%s)\n**Hotel:** %s\n**Dates:** %s - %s\n**Total:** %s\n**Status:** %s",
		event.Kind,
		b.ID,
		event.User.FullName,
		event.User.Email,
		event.Hotel.Name,
		b.CheckInDate.Format("2006-01-02"),
		b.CheckOutDate.Format("2006-01-02"),
		b.TotalCost.StringFixed(2),
		status,
	)
}
