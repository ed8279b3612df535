package config

import "time"

// Api 论坛 REST 后端
type Api struct {
	BaseURL   string `json:"base_url" yaml:"base_url"`
	TimeoutMs int    `json:"timeout_ms" yaml:"timeout_ms"`
}

func (a *Api) fillDefaults() {
	if a.TimeoutMs <= 0 {
		a.TimeoutMs = 15000
	}
}

func (a *Api) Timeout() time.Duration {
	return time.Duration(a.TimeoutMs) * time.Millisecond
}

func ProvideApiConfig(cfg *Config) *Api {
	return cfg.Api
}
