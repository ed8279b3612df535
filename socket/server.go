package socket

import (
	"EduForum/pkg/log"
	"EduForum/socket/process"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EduForum/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var ErrServerClosed = errors.New("shutting down server")

type AppProvider struct {
	Config    *config.Config
	Engine    *gin.Engine
	Coroutine *process.Server
	Db        *gorm.DB
	Redis     *redis.Client
}

// Run 同步进程：实时通道 + 订阅处理 + 本地接口
func Run(ctx *cli.Context, app *AppProvider) error {
	eg, groupCtx := errgroup.WithContext(ctx.Context)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)

	app.Coroutine.Start(eg, groupCtx)

	log.L.Info("server Pid", zap.Int("server_pid", os.Getpid()))
	log.L.Info("local api listen", zap.Int("port", app.Config.Server.Http))

	return start(c, eg, groupCtx, app)
}

func start(c chan os.Signal, eg *errgroup.Group, ctx context.Context, app *AppProvider) error {
	serv := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.Config.Server.Http),
		Handler: app.Engine,
	}

	// 启动本地接口
	eg.Go(func() error {
		if err := serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() (err error) {
		defer func() {
			log.L.Info("Shutting down component...")

			timeCtx, timeCancel := context.WithTimeout(context.TODO(), 3*time.Second)
			defer timeCancel()

			if err := serv.Shutdown(timeCtx); err != nil {
				log.L.Error("Server Shutdown Failed", zap.Error(err))
			}
			closeStores(app)

			err = ErrServerClosed
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c:
			return nil
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrServerClosed) {
		log.L.Error("Server forced to shutdown", zap.Error(err))
	}

	log.L.Info("Server exiting")

	return nil
}

func closeStores(app *AppProvider) {
	if app.Redis != nil {
		_ = app.Redis.Close()
	}
	if app.Db != nil {
		if sqlDB, err := app.Db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
