package util

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("64b0000000000000000000aa", "secret")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	userID, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT failed: %v", err)
	}
	if userID != "64b0000000000000000000aa" {
		t.Errorf("expected original user id, got %q", userID)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, _ := GenerateJWT("64b0000000000000000000aa", "secret")

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("expected parse to fail with the wrong secret")
	}
}

func TestJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("not-a-token", "secret"); err == nil {
		t.Error("expected parse to fail on garbage")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter22" {
		t.Error("hash equals the plaintext")
	}
	if !CheckPassword("hunter22", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("expected wrong password to fail")
	}
}
