package cli

import (
	"context"
	"fmt"

	"github.com/mvasiljevs/commhub/internal/client/services"
)

func (a *App) listResources(ctx context.Context) error {
	list, err := a.resources.List(ctx, services.ResourceFilter{Limit: 20})
	if err != nil {
		return err
	}

	if len(list.Results) == 0 {
		fmt.Println("No resources found.")
		return nil
	}
	for _, r := range list.Results {
		fmt.Printf("%-12s  %-40s  %s (%s)\n",
			r.PublicID, truncate(r.Title, 40), r.ResourceType, r.SourceName)
	}
	if list.Next {
		fmt.Printf("Showing %d of %d.\n", len(list.Results), list.Count)
	}
	return nil
}

func (a *App) showResource(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: resource <id>")
		return nil
	}

	r, err := a.resources.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s | %s | %s\n\n%s\n\n%s\n",
		r.Title, r.ResourceType, r.Region, r.PublishedDate, r.Description, r.URL)
	return nil
}
