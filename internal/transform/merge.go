package transform

import (
	"encoding/json"
	"strings"

	"EduForum/types"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MergeDiscussion 把更新事件的顶层字段浅合并进已有记录，ID 不可变
func MergeDiscussion(d types.Discussion, patch []byte) types.Discussion {
	base, err := json.Marshal(d)
	if err != nil {
		return d
	}
	merged := Discussion(gjson.ParseBytes(overlay(base, patch)))
	merged.ID = d.ID
	return merged
}

func MergeReply(r types.Reply, patch []byte) types.Reply {
	base, err := json.Marshal(r)
	if err != nil {
		return r
	}
	merged := Reply(gjson.ParseBytes(overlay(base, patch)), "")
	merged.ID = r.ID
	merged.Discussion = r.Discussion
	return merged
}

func overlay(base, patch []byte) []byte {
	p := gjson.ParseBytes(patch)
	if !p.IsObject() {
		return base
	}
	p.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if k == "" || k == "_id" || k == "id" {
			return true
		}
		if out, err := sjson.SetRawBytes(base, escapeKey(k), []byte(value.Raw)); err == nil {
			base = out
		}
		return true
	})
	return base
}

var keyEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
)

func escapeKey(k string) string {
	return keyEscaper.Replace(k)
}
