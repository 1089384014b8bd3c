package app

import (
	"fmt"
	"testing"

	"github.com/form3tech-oss/jwt-go"
)

func TestChannelTokenServicePresenceChannel(t *testing.T) {
	secret := "test-secret"
	svc := NewChannelTokenService(secret, "issuer")

	tokenString, err := svc.Authorize("presence-room42", "user123", "alice")
	if err != nil {
		t.Fatalf("authorize error: %v", err)
	}

	claims := parseChannelClaims(t, tokenString, secret)
	if got := stringClaim(t, claims, "channel"); got != "presence-room42" {
		t.Fatalf("channel = %s, want presence-room42", got)
	}
	if got := stringClaim(t, claims, "sub"); got != "user123" {
		t.Fatalf("sub = %s, want user123", got)
	}

	info, ok := claims["user_info"].(map[string]any)
	if !ok {
		t.Fatalf("user_info claim missing or wrong type: %v", claims["user_info"])
	}
	if info["username"] != "alice" {
		t.Fatalf("username = %v, want alice", info["username"])
	}
	if info["color"] != UserColor("user123") {
		t.Fatalf("color = %v, want %s", info["color"], UserColor("user123"))
	}
}

func TestChannelTokenServicePrivateChannelOmitsUserInfo(t *testing.T) {
	secret := "test-secret"
	svc := NewChannelTokenService(secret, "issuer")

	tokenString, err := svc.Authorize("private-room42", "user123", "alice")
	if err != nil {
		t.Fatalf("authorize error: %v", err)
	}

	claims := parseChannelClaims(t, tokenString, secret)
	if _, ok := claims["user_info"]; ok {
		t.Fatal("private channel token should not carry user_info")
	}
}

func TestChannelTokenServiceRequiresConfig(t *testing.T) {
	svc := NewChannelTokenService("", "issuer")
	if _, err := svc.Authorize("presence-x", "user", ""); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestChannelTokenServiceRequiresUser(t *testing.T) {
	svc := NewChannelTokenService("secret", "issuer")
	if _, err := svc.Authorize("presence-x", "", ""); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestChannelTokenServiceRequiresChannel(t *testing.T) {
	svc := NewChannelTokenService("secret", "issuer")
	if _, err := svc.Authorize("", "user", ""); err == nil {
		t.Fatal("expected error for empty channel name")
	}
}

func TestUserColorStable(t *testing.T) {
	if UserColor("abc") != UserColor("abc") {
		t.Fatal("color must be deterministic per id")
	}
	if UserColor("abc") == UserColor("abd") {
		t.Fatal("distinct ids should map to distinct hues")
	}
}

func parseChannelClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func stringClaim(t *testing.T, claims jwt.MapClaims, name string) string {
	t.Helper()
	value, ok := claims[name]
	if !ok {
		t.Fatalf("missing %s claim", name)
	}
	str, ok := value.(string)
	if !ok {
		t.Fatalf("%s claim is not a string", name)
	}
	return str
}
