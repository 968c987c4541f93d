package cli

import (
	"context"
	"fmt"

	"github.com/mvasiljevs/commhub/internal/client/models"
)

func (a *App) listEvents(ctx context.Context, args []string) error {
	var (
		events []models.Event
		err    error
	)

	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	switch mode {
	case "featured":
		events, err = a.events.Featured(ctx)
	case "upcoming":
		events, err = a.events.Upcoming(ctx)
	default:
		events, err = a.events.List(ctx)
	}
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No events found.")
		return nil
	}
	for _, e := range events {
		fmt.Printf("%-12s  %s %s  %-35s  %s (%d registered)\n",
			e.PublicID, e.Date, e.Time, truncate(e.Title, 35), e.Status, e.RegistrationsCount)
	}
	return nil
}

func (a *App) showEvent(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: event <id>")
		return nil
	}
	id := args[0]

	event, err := a.events.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n%s %s @ %s\norganized by %s\n\n%s\n",
		event.Title, event.Type, event.Date, event.Time, event.Location,
		event.Organizer.Username, event.Description)

	speakers, err := a.events.Speakers(ctx, id)
	if err != nil {
		return err
	}
	if len(speakers) > 0 {
		fmt.Println("\nSpeakers:")
		for _, s := range speakers {
			fmt.Printf("  %s — %s\n", s.Name, s.Role)
		}
	}

	agenda, err := a.events.Agenda(ctx, id)
	if err != nil {
		return err
	}
	if len(agenda) > 0 {
		fmt.Println("\nAgenda:")
		for _, item := range agenda {
			fmt.Printf("  %s  %s\n", item.Time, item.Title)
		}
	}
	return nil
}

func (a *App) registerForEvent(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: rsvp <event-id> [cancel]")
		return nil
	}

	if len(args) > 1 && args[1] == "cancel" {
		if err := a.events.CancelRegistration(ctx, args[0]); err != nil {
			return err
		}
		a.sink.Success("Registration cancelled.")
		return nil
	}

	reg, err := a.events.Register(ctx, args[0])
	if err != nil {
		return err
	}
	a.sink.Success(fmt.Sprintf("Registered for the event (%s).", reg.PublicID))
	return nil
}
