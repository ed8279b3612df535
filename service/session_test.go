package service

import (
	"EduForum/config"
	"EduForum/pkg/jwt"
	"testing"
	"time"
)

func TestNewSession_UserFromToken(t *testing.T) {
	token, err := jwt.GenerateToken([]byte("whatever"), "u42", "Teacher", "access", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	s := NewSession(&config.Auth{Token: token})
	if !s.LoggedIn() || s.Uid() != "u42" || s.Role != "Teacher" {
		t.Fatalf("session = %+v", s)
	}

	s = NewSession(&config.Auth{Token: token, UserID: "explicit"})
	if s.Uid() != "explicit" {
		t.Fatal("configured user id wins")
	}

	if NewSession(&config.Auth{}).LoggedIn() {
		t.Fatal("no token, not logged in")
	}
}
