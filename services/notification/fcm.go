package notification

import (
	"context"
	"fmt"
	"strings"

	userRepo "quickcourt/database/repository/user"
	"quickcourt/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMPusher mirrors user-room events to the user's device via Firebase Cloud
// Messaging. Role rooms are skipped: they are a websocket concept.
type FCMPusher struct {
	client *messaging.Client
	users  userRepo.UserRepository
}

// NewFCMPusher initialises Firebase from a service-account file.
func NewFCMPusher(ctx context.Context, credentialsFile string, users userRepo.UserRepository) (*FCMPusher, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}
	return &FCMPusher{client: client, users: users}, nil
}

func (p *FCMPusher) Publish(ctx context.Context, event string, payload interface{}, rooms ...string) error {
	for _, room := range rooms {
		userID, ok := strings.CutPrefix(room, models.UserRoom(""))
		if !ok || userID == "" {
			continue
		}
		u, err := p.users.GetByID(ctx, userID)
		if err != nil || u.FCMToken == "" {
			continue
		}
		msg := &messaging.Message{
			Token: u.FCMToken,
			Notification: &messaging.Notification{
				Title: pushTitle(event),
				Body:  pushBody(event, payload),
			},
			Data: map[string]string{"event": event},
		}
		if _, err := p.client.Send(ctx, msg); err != nil {
			return fmt.Errorf("fcm send to user %s failed: %w", userID, err)
		}
	}
	return nil
}

func pushTitle(event string) string {
	switch event {
	case models.EventOfferNew:
		return "New price offer"
	case models.EventOfferUpdate:
		return "Offer updated"
	case models.EventBookingUpdate:
		return "Booking updated"
	default:
		return "QuickCourt"
	}
}

func pushBody(event string, payload interface{}) string {
	switch v := payload.(type) {
	case *models.Offer:
		return fmt.Sprintf("Offer for %s %s-%s is now %s", v.Date, v.StartTime, v.EndTime, v.Status)
	case *models.Booking:
		return fmt.Sprintf("Booking on %s at %s is now %s", v.Date, v.StartTime, v.Status)
	}
	return event
}
