package cli

import (
	"context"
	"fmt"
)

func (a *App) showProfile(ctx context.Context) error {
	profile, err := a.users.CurrentProfile(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", profile.Username, profile.Email)
	if profile.Profile.FullName != "" {
		fmt.Println("Name:    ", profile.Profile.FullName)
	}
	if profile.Profile.Bio != "" {
		fmt.Println("Bio:     ", profile.Profile.Bio)
	}
	if profile.Profile.Location != "" {
		fmt.Println("Location:", profile.Profile.Location)
	}
	if profile.Profile.Website != "" {
		fmt.Println("Website: ", profile.Profile.Website)
	}
	fmt.Println("Role:    ", profile.Role)
	return nil
}
