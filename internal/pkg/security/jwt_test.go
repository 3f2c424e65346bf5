package security

import (
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "pro")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user_id = %d, want 42", claims.UserID)
	}
	if claims.Plan != "pro" {
		t.Errorf("plan = %q, want pro", claims.Plan)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(42, "pro")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err = ValidateToken(tampered); err == nil {
		t.Error("篡改过的 token 应当校验失败")
	}
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken(42, "pro")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	sig, err := ExtractSignature(token)
	if err != nil {
		t.Fatalf("ExtractSignature: %v", err)
	}
	if !strings.HasSuffix(token, sig) {
		t.Error("签名应当是 token 的最后一段")
	}

	if _, err = ExtractSignature("not-a-jwt"); err == nil {
		t.Error("非法格式应当报错")
	}
}
