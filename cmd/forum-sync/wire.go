//go:build wireinject
// +build wireinject

package main

import (
	"EduForum/config"
	"EduForum/dao"
	"EduForum/handler"
	"EduForum/pkg/client"
	"EduForum/pkg/database"
	"EduForum/service"
	"EduForum/socket"

	"github.com/google/wire"
)

func InitSocketServer(cfg *config.Config) *socket.AppProvider {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		client.NewHttpClient,
		client.NewSocketClient,
		config.ProvideApiConfig,
		config.ProvideSocketConfig,
		config.ProvideAuthConfig,
		dao.ProviderSet,
		service.ProviderSet,
		handler.ProviderSet,
		socket.ProviderSet,
	)
	return nil
}

func InitCommand(cfg *config.Config) *Command {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		client.NewHttpClient,
		config.ProvideApiConfig,
		config.ProvideAuthConfig,
		dao.ProviderSet,
		service.ProviderSet,
		wire.Struct(new(Command), "*"),
	)
	return nil
}
