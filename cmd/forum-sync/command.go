package main

import (
	"EduForum/config"
	"EduForum/service"
	"EduForum/types"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Command 一次性命令用到的服务，不建立实时连接
type Command struct {
	Feed     *service.FeedService
	Detail   *service.DetailService
	Sidebar  *service.SidebarService
	Bookmark *service.BookmarkService
	Notice   *service.NoticeService
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func firstArg(ctx *cli.Context, name string) (string, error) {
	if ctx.NArg() < 1 {
		return "", fmt.Errorf("missing %s", name)
	}
	return ctx.Args().First(), nil
}

func feedCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "feed",
		Usage: "print one page of discussions",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tab", Value: types.TabRecent},
			&cli.StringFlag{Name: "category"},
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}},
			&cli.IntFlag{Name: "page", Value: 1},
			&cli.IntFlag{Name: "limit", Value: 20},
		},
		Action: func(ctx *cli.Context) error {
			c := InitCommand(cfg)
			var err error
			if q := ctx.String("search"); q != "" {
				err = c.Feed.Search(ctx.Context, q, ctx.Int("page"), ctx.Int("limit"))
			} else {
				err = c.Feed.Load(ctx.Context, types.FeedParams{
					Tab:      ctx.String("tab"),
					Category: ctx.String("category"),
					Page:     ctx.Int("page"),
					Limit:    ctx.Int("limit"),
				})
			}
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"discussions": c.Feed.Discussions(),
				"pagination":  c.Feed.Pagination(),
			})
		},
	}
}

func showCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print a discussion with its replies",
		ArgsUsage: "<discussion-id>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "page", Value: 1},
			&cli.IntFlag{Name: "limit", Value: 20},
		},
		Action: func(ctx *cli.Context) error {
			id, err := firstArg(ctx, "discussion id")
			if err != nil {
				return err
			}
			c := InitCommand(cfg)
			view := c.Detail.Open(id)
			defer c.Detail.CloseView(id)
			if err := view.Load(ctx.Context, ctx.Int("page"), ctx.Int("limit")); err != nil {
				return err
			}
			return printJSON(view.Snapshot())
		},
	}
}

func postCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "post",
		Usage: "create a discussion",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true},
			&cli.StringFlag{Name: "content", Required: true},
			&cli.StringFlag{Name: "category", Required: true},
			&cli.StringSliceFlag{Name: "tag"},
		},
		Action: func(ctx *cli.Context) error {
			c := InitCommand(cfg)
			d, err := c.Feed.Create(ctx.Context, types.CreateDiscussionRequest{
				Title:    ctx.String("title"),
				Content:  ctx.String("content"),
				Category: ctx.String("category"),
				Tags:     ctx.StringSlice("tag"),
			})
			if err != nil {
				return err
			}
			return printJSON(d)
		},
	}
}

func replyCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "reply",
		Usage:     "reply to a discussion",
		ArgsUsage: "<discussion-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "content", Required: true},
			&cli.StringFlag{Name: "parent", Usage: "parent reply id"},
		},
		Action: func(ctx *cli.Context) error {
			id, err := firstArg(ctx, "discussion id")
			if err != nil {
				return err
			}
			c := InitCommand(cfg)
			view := c.Detail.Open(id)
			defer c.Detail.CloseView(id)
			r, err := view.PostReply(ctx.Context, ctx.String("content"), ctx.String("parent"))
			if err != nil {
				return err
			}
			return printJSON(r)
		},
	}
}

func likeCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "like",
		Usage:     "toggle like on a discussion, or on one of its replies",
		ArgsUsage: "<discussion-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "reply", Usage: "reply id"},
		},
		Action: func(ctx *cli.Context) error {
			id, err := firstArg(ctx, "discussion id")
			if err != nil {
				return err
			}
			c := InitCommand(cfg)
			view := c.Detail.Open(id)
			defer c.Detail.CloseView(id)
			if err := view.Load(ctx.Context, 1, 20); err != nil {
				return err
			}
			if rid := ctx.String("reply"); rid != "" {
				if err := view.ToggleLikeReply(ctx.Context, rid); err != nil {
					return err
				}
				for _, r := range view.Replies() {
					if r.ID == rid {
						return printJSON(r)
					}
				}
				return errors.New("reply not found on first page")
			}
			if err := view.ToggleLike(ctx.Context); err != nil {
				return err
			}
			return printJSON(view.Discussion())
		},
	}
}

func sidebarCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "sidebar",
		Usage: "print trending, category stats and community overview",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "refresh", Usage: "skip the cache"},
		},
		Action: func(ctx *cli.Context) error {
			c := InitCommand(cfg)
			var (
				sb  *types.Sidebar
				err error
			)
			if ctx.Bool("refresh") {
				sb, err = c.Sidebar.Refresh(ctx.Context)
			} else {
				sb, err = c.Sidebar.Load(ctx.Context)
			}
			if err != nil {
				return err
			}
			return printJSON(sb)
		},
	}
}

func bookmarkCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "bookmarks",
		Usage: "list, add or remove bookmarks",
		Action: func(ctx *cli.Context) error {
			c := InitCommand(cfg)
			list, err := c.Bookmark.List(ctx.Context)
			if err != nil {
				return err
			}
			return printJSON(list)
		},
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				ArgsUsage: "<discussion-id>",
				Action: func(ctx *cli.Context) error {
					id, err := firstArg(ctx, "discussion id")
					if err != nil {
						return err
					}
					return InitCommand(cfg).Bookmark.Bookmark(ctx.Context, id)
				},
			},
			{
				Name:      "remove",
				ArgsUsage: "<discussion-id>",
				Action: func(ctx *cli.Context) error {
					id, err := firstArg(ctx, "discussion id")
					if err != nil {
						return err
					}
					return InitCommand(cfg).Bookmark.Unbookmark(ctx.Context, id)
				},
			},
		},
	}
}

func noticesCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "notices",
		Usage: "print stored notifications",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20},
		},
		Action: func(ctx *cli.Context) error {
			list, err := InitCommand(cfg).Notice.History(ctx.Context, ctx.Int("limit"))
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	}
}
