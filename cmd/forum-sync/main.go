package main

import (
	"EduForum/config"
	"EduForum/pkg/log"
	"EduForum/pkg/snowflake"
	s "EduForum/socket"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)
	log.SetDebug(cfg.Debug())
	if cfg.App.Node > 0 {
		if err := snowflake.SetNode(cfg.App.Node); err != nil {
			log.L.Fatal("invalid snowflake node", zap.Int64("node", cfg.App.Node), zap.Error(err))
		}
	}

	cliApp := &cli.App{
		Name:  "forum-sync",
		Usage: "forum real-time sync daemon",

		// 默认启动同步进程
		Action: func(ctx *cli.Context) error {
			return s.Run(ctx, InitSocketServer(cfg))
		},

		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the sync daemon with local api",
				Action: func(ctx *cli.Context) error {
					return s.Run(ctx, InitSocketServer(cfg))
				},
			},
			feedCommand(cfg),
			showCommand(cfg),
			postCommand(cfg),
			replyCommand(cfg),
			likeCommand(cfg),
			sidebarCommand(cfg),
			bookmarkCommand(cfg),
			noticesCommand(cfg),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("forum-sync exited", zap.Error(err))
	}
}
