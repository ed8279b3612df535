package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	mu   sync.Mutex
	node *snowflake.Node
)

func init() {
	node, _ = snowflake.NewNode(1)
}

// SetNode 多个同步进程共用一张通知表时各自配置不同节点号
func SetNode(id int64) error {
	n, err := snowflake.NewNode(id)
	if err != nil {
		return err
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// GenID 通知ID
func GenID() int64 {
	mu.Lock()
	n := node
	mu.Unlock()
	return n.Generate().Int64()
}
