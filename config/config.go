package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App    *App          `json:"app" yaml:"app"`
	Api    *Api          `json:"api" yaml:"api"`
	Socket *Socket       `json:"socket" yaml:"socket"`
	Auth   *Auth         `json:"auth" yaml:"auth"`
	Server *Server       `json:"server" yaml:"server"`
	Redis  *Redis        `json:"redis" yaml:"redis"`
	MySQL  *MySQL        `json:"mysql" yaml:"mysql"`
	Notice *NoticeConfig `json:"notice" yaml:"notice"`
}

type Server struct {
	Http      int    `json:"http" yaml:"http"`
	ApiSecret string `json:"api_secret" yaml:"api_secret"` // 本地接口鉴权密钥，为空则不校验
}

// New 读取配置文件，同目录下的 .env 会覆盖凭证与地址
func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		panic(fmt.Sprintf("解析 %s 读取错误: %v", filename, err))
	}

	_ = godotenv.Load()
	conf.applyEnv()
	conf.fillDefaults()

	return &conf
}

// applyEnv 环境变量优先于配置文件
func (c *Config) applyEnv() {
	if c.Auth == nil {
		c.Auth = &Auth{}
	}
	if c.Api == nil {
		c.Api = &Api{}
	}
	if c.Socket == nil {
		c.Socket = &Socket{}
	}

	if v := strings.TrimSpace(os.Getenv("FORUM_TOKEN")); v != "" {
		c.Auth.Token = v
	}
	if v := strings.TrimSpace(os.Getenv("FORUM_USER_ID")); v != "" {
		c.Auth.UserID = v
	}
	if v := strings.TrimSpace(os.Getenv("FORUM_API_URL")); v != "" {
		c.Api.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("FORUM_SOCKET_URL")); v != "" {
		c.Socket.URL = v
	}
}

func (c *Config) fillDefaults() {
	if c.App == nil {
		c.App = &App{Name: "forum-sync"}
	}
	if c.Server == nil {
		c.Server = &Server{Http: 8083}
	}
	if c.Notice == nil {
		c.Notice = &NoticeConfig{}
	}
	c.Api.fillDefaults()
	c.Socket.fillDefaults()
	c.Notice.fillDefaults()
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
