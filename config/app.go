package config

type App struct {
	Name  string `json:"name" yaml:"name"`
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	Node  int64  `json:"node" yaml:"node"` // 通知ID的 snowflake 节点号
}

// Auth 论坛登录凭证，由调用方显式注入
type Auth struct {
	Token  string `json:"token" yaml:"token"`
	UserID string `json:"user_id" yaml:"user_id"` // 为空时从 token 中解析
}

func ProvideAuthConfig(cfg *Config) *Auth {
	return cfg.Auth
}
