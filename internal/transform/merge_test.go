package transform

import (
	"reflect"
	"testing"

	"github.com/tidwall/gjson"
)

func TestMergeDiscussion(t *testing.T) {
	d := Discussion(gjson.Parse(rawDiscussion))

	merged := MergeDiscussion(d, []byte(`{"_id":"other","isLocked":true,"likes":["u9"],"views":50}`))
	if merged.ID != "d1" {
		t.Fatalf("id changed to %q", merged.ID)
	}
	if !merged.IsLocked || merged.Views != 50 || !reflect.DeepEqual(merged.Likes, []string{"u9"}) {
		t.Fatalf("patch not applied: %+v", merged)
	}
	if merged.Title != d.Title || !merged.IsPinned || !merged.CreatedAt.Equal(d.CreatedAt) {
		t.Fatal("untouched fields must survive the merge")
	}
}

func TestMergeDiscussion_DottedKeyAndGarbage(t *testing.T) {
	d := Discussion(gjson.Parse(`{"_id":"d1","title":"hello"}`))

	if got := MergeDiscussion(d, []byte(`{"a.b":1}`)); got.Title != "hello" {
		t.Fatalf("dotted key broke merge: %+v", got)
	}
	if got := MergeDiscussion(d, []byte(`not json`)); !reflect.DeepEqual(got, d) {
		t.Fatal("invalid patch should be a no-op")
	}
}

func TestMergeReply(t *testing.T) {
	r := Reply(gjson.Parse(`{"_id":"r1","discussion":"d1","content":"first!","createdBy":"u1","isOP":true}`), "")
	merged := MergeReply(r, []byte(`{"content":"edited","discussion":"d2"}`))
	if merged.Content != "edited" || merged.Discussion != "d1" || !merged.IsOP {
		t.Fatalf("merged = %+v", merged)
	}
}
