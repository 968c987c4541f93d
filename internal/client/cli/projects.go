package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mvasiljevs/commhub/internal/client/models"
)

func (a *App) listProjects(ctx context.Context) error {
	projects, err := a.projects.List(ctx, nil)
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}
	for _, p := range projects {
		featured := " "
		if p.IsFeatured {
			featured = "*"
		}
		fmt.Printf("%s %-12s  %-35s  %-12s by %s [%s]\n",
			featured, p.PublicID, truncate(p.Title, 35), p.Industry, p.Creator.Username, p.Status)
	}
	return nil
}

func (a *App) showProject(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: project <id>")
		return nil
	}

	p, err := a.projects.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\nby %s | tech: %s\n\n%s\n",
		p.Title, p.Industry, p.Creator.Username,
		strings.Join(p.Technologies, ", "), p.Description)
	if len(p.KeyFeatures) > 0 {
		fmt.Println("\nKey features:")
		for _, f := range p.KeyFeatures {
			fmt.Printf("  - %s: %s\n", f.Name, f.Description)
		}
	}
	return nil
}

func (a *App) submitProject(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	industry, err := getSimpleText(a.reader, "Industry", os.Stdout)
	if err != nil {
		return err
	}
	tech, err := getSimpleText(a.reader, "Technologies (comma separated)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}

	project, err := a.projects.Create(ctx, models.ProjectCreate{
		Title:        title,
		Description:  description,
		Industry:     industry,
		Technologies: splitList(tech),
		Tags:         []string{},
		Tools:        []string{},
	})
	if err != nil {
		return err
	}

	a.sink.Success(fmt.Sprintf("Project submitted for review: %s", project.PublicID))
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
