package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mvasiljevs/commhub/internal/client/models"
)

const threadCommentsPageSize = 20

func (a *App) listThreads(ctx context.Context) error {
	threads, err := a.forums.ListThreads(ctx)
	if err != nil {
		return err
	}

	if len(threads) == 0 {
		fmt.Println("No threads yet.")
		return nil
	}
	for _, t := range threads {
		pin := " "
		if t.IsPinned {
			pin = "*"
		}
		fmt.Printf("%s %-12s  %-40s  by %s (%d comments)\n",
			pin, t.PublicID, truncate(t.Title, 40), t.Author.Username, t.CommentsCount)
	}
	return nil
}

func (a *App) showThread(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: thread <id>")
		return nil
	}

	detail, err := a.forums.GetThread(ctx, args[0], threadCommentsPageSize)
	if err != nil {
		return err
	}

	fmt.Printf("%s\nby %s in %s | views: %d\n\n%s\n",
		detail.Title, detail.Author.Username, detail.Category, detail.Views, detail.Content)
	for _, c := range detail.Comments.Results {
		fmt.Printf("  [%s] %s: %s\n", c.PublicID, c.Author.Username, truncate(c.Content, 120))
	}
	if detail.Comments.HasMore {
		fmt.Println("  ...more comments on the web")
	}
	return nil
}

func (a *App) createThread(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", os.Stdout)
	if err != nil {
		return err
	}

	thread, err := a.forums.CreateThread(ctx, models.ThreadCreate{
		Title:    title,
		Content:  content,
		Category: category,
	})
	if err != nil {
		return err
	}

	a.sink.Success(fmt.Sprintf("Thread created: %s", thread.PublicID))
	return nil
}

func (a *App) addComment(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: comment <thread-id>")
		return nil
	}

	content, err := GetMultiline(a.reader, "Comment", os.Stdout)
	if err != nil {
		return err
	}

	comment, err := a.forums.AddComment(ctx, args[0], content)
	if err != nil {
		return err
	}

	a.sink.Success(fmt.Sprintf("Comment added: %s", comment.PublicID))
	return nil
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
