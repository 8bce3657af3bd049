package cache

import (
	"context"
	"testing"
)

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "not a url"); err == nil {
		t.Error("Expected error for malformed Redis URL")
	}
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "redis://127.0.0.1:1/0"); err == nil {
		t.Error("Expected ping failure for unreachable Redis")
	}
}
