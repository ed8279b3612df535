package service

import (
	"reflect"
	"testing"
)

func TestPresence(t *testing.T) {
	s := NewPresenceService()
	conn := newFakeConn()
	s.Bind(conn)

	conn.fire("userOnline", `{"userId":"u1"}`)
	conn.fire("userOnline", `"u2"`)
	conn.fire("userOffline", `{"userId":"u1"}`)

	if s.IsOnline("u1") || !s.IsOnline("u2") {
		t.Fatalf("online = %v", s.Online())
	}
	if !reflect.DeepEqual(s.Online(), []string{"u2"}) {
		t.Fatalf("online = %v", s.Online())
	}

	s.Close()
	conn.fire("userOnline", `"u3"`)
	if s.IsOnline("u3") {
		t.Fatal("closed service ignores events")
	}
}
