package config

import "time"

// Redis Redis配置信息，Address 为空表示不启用侧边栏快照缓存
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
	TTL      int    `json:"ttl" yaml:"ttl"` // 快照过期秒数
}

// Lifetime 快照过期时间，未配置时由存储层取默认值
func (r *Redis) Lifetime() time.Duration {
	if r == nil {
		return 0
	}
	return time.Duration(r.TTL) * time.Second
}
