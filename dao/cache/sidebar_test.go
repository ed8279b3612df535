package cache

import (
	"EduForum/types"
	"context"
	"testing"
)

func TestSidebarStorage_Disabled(t *testing.T) {
	s := NewSidebarStorage(nil, 0)
	if s.Enabled() {
		t.Fatal("nil redis must disable storage")
	}
	if err := s.Set(context.Background(), &types.Sidebar{}); err != nil {
		t.Fatal(err)
	}
	sb, err := s.Get(context.Background())
	if sb != nil || err != nil {
		t.Fatalf("got %v %v", sb, err)
	}
	if s.ttl != defaultSidebarTTL {
		t.Fatalf("ttl = %s", s.ttl)
	}
}
