package auth

import "testing"

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken("secret", 7, "user")
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.UserID != 7 || claims.Role != "user" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := ParseToken("wrong-secret", token); err == nil {
		t.Fatalf("token accepted with the wrong secret")
	}
	if _, err := ParseToken("secret", ""); err == nil {
		t.Fatalf("empty token accepted")
	}
}

func TestPrincipalAuthorization(t *testing.T) {
	user := Principal{Kind: KindUser, ID: 7, Role: "user"}
	roleAdmin := Principal{Kind: KindUser, ID: 8, Role: "admin"}
	sessionAdmin := Principal{Kind: KindAdmin, ID: 1}

	if user.IsAdmin() {
		t.Fatalf("plain user must not be admin")
	}
	if !roleAdmin.IsAdmin() || !sessionAdmin.IsAdmin() {
		t.Fatalf("admin detection failed")
	}

	if !user.CanManageRentable(7) {
		t.Fatalf("owner must manage own rentable")
	}
	if user.CanManageRentable(8) {
		t.Fatalf("stranger must not manage someone else's rentable")
	}
	if !sessionAdmin.CanManageRentable(7) {
		t.Fatalf("admin must manage any rentable")
	}

	if !user.OwnsBooking(7) {
		t.Fatalf("creator must own booking")
	}
	if sessionAdmin.OwnsBooking(7) {
		t.Fatalf("admin has no ownership shortcut for deletion")
	}
}
