package store

import (
	"database/sql"
	"testing"

	"github.com/dstanek/focusflow/internal/database"
)

func setupSessionTestDB(t *testing.T) (*SessionStore, *UserStore, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSessionStore(db), NewUserStore(db), db
}

func TestSessionCreate(t *testing.T) {
	ss, us, _ := setupSessionTestDB(t)

	u, err := us.Register("alice", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	sess, err := ss.Create(u.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if sess.Token == "" {
		t.Error("expected non-empty token")
	}
	if len(sess.Token) != 64 { // 32 bytes hex-encoded
		t.Errorf("token length = %d, want 64", len(sess.Token))
	}
	if sess.UserID != u.ID {
		t.Errorf("user_id = %d, want %d", sess.UserID, u.ID)
	}
	if !sess.ExpiresAt.After(sess.CreatedAt) {
		t.Error("expected expiry after creation")
	}
}

func TestSessionTokensUnique(t *testing.T) {
	ss, us, _ := setupSessionTestDB(t)

	u, _ := us.Register("alice", "pw")

	a, _ := ss.Create(u.ID)
	b, _ := ss.Create(u.ID)
	if a.Token == b.Token {
		t.Error("expected distinct tokens")
	}
}

func TestSessionGetByToken(t *testing.T) {
	ss, us, _ := setupSessionTestDB(t)

	u, _ := us.Register("alice", "pw")
	created, _ := ss.Create(u.ID)

	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess == nil {
		t.Fatal("expected session, got nil")
	}
	if sess.ID != created.ID {
		t.Errorf("id = %d, want %d", sess.ID, created.ID)
	}
}

func TestSessionGetByTokenNotFound(t *testing.T) {
	ss, _, _ := setupSessionTestDB(t)

	sess, err := ss.GetByToken("nonexistent")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil for nonexistent token")
	}
}

func TestSessionGetByTokenExpired(t *testing.T) {
	ss, us, db := setupSessionTestDB(t)

	u, _ := us.Register("alice", "pw")
	created, _ := ss.Create(u.ID)

	_, err := db.Exec(
		`UPDATE auth_sessions SET expires_at = datetime('now', '-1 minute') WHERE id = ?`,
		created.ID,
	)
	if err != nil {
		t.Fatalf("expire session: %v", err)
	}

	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil for expired token")
	}
}

func TestSessionDelete(t *testing.T) {
	ss, us, _ := setupSessionTestDB(t)

	u, _ := us.Register("alice", "pw")
	created, _ := ss.Create(u.ID)

	if err := ss.Delete(created.Token); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil after delete")
	}
}

func TestSessionDeleteExpired(t *testing.T) {
	ss, us, db := setupSessionTestDB(t)

	u, _ := us.Register("alice", "pw")
	live, _ := ss.Create(u.ID)
	stale, _ := ss.Create(u.ID)

	if _, err := db.Exec(
		`UPDATE auth_sessions SET expires_at = datetime('now', '-1 day') WHERE id = ?`,
		stale.ID,
	); err != nil {
		t.Fatalf("expire session: %v", err)
	}

	n, err := ss.DeleteExpired()
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	sess, _ := ss.GetByToken(live.Token)
	if sess == nil {
		t.Error("live session should survive cleanup")
	}
}
