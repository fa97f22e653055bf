package infra

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestNewRedis(t *testing.T) {
	client, err := NewRedis(context.Background(), "")
	if err != nil || client != nil {
		t.Fatalf("empty addr should disable redis, got %v %v", client, err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer mr.Close()

	client, err = NewRedis(context.Background(), mr.Addr())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()
}

func TestNewDBDisabled(t *testing.T) {
	pool, err := NewDB(context.Background(), "")
	if err != nil || pool != nil {
		t.Fatalf("empty dsn should disable db, got %v %v", pool, err)
	}
}
