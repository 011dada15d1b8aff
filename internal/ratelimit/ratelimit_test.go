package ratelimit

import "testing"

func TestAllowRespectsBurst(t *testing.T) {
	krl := New(1, 3)

	for i := 0; i < 3; i++ {
		if !krl.Allow("client") {
			t.Fatalf("call %d: expected allow within burst", i)
		}
	}
	if krl.Allow("client") {
		t.Error("expected deny after burst exhausted")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	krl := New(1, 1)

	if !krl.Allow("a") {
		t.Fatal("first request for a should pass")
	}
	if krl.Allow("a") {
		t.Error("second request for a should be limited")
	}
	if !krl.Allow("b") {
		t.Error("first request for b should pass")
	}
}
