package chat

import "testing"

func TestResolveKeyThreadIDAuthoritative(t *testing.T) {
	cases := []ChatMessage{
		{ID: "1", ThreadID: "t1"},
		{ID: "2", ThreadID: "t1", UID: "u1", Name: "Sam", Phone: "555"},
		{ID: "3", ThreadID: "t1", FromAdmin: true, UID: "admin:1", ReplyTo: "somewhere"},
	}
	for _, m := range cases {
		res := ResolveKey(m, nil)
		if res.Key != "thread:t1" {
			t.Fatalf("message %s: expected thread:t1, got %q", m.ID, res.Key)
		}
	}
}

func TestResolveKeyThreadIDDoesNotBecomeUID(t *testing.T) {
	// A guest thread has an id but no uid; the id must stay out of the uid
	// field. Presence lookups fall back through Thread.PresenceUID instead.
	res := ResolveKey(ChatMessage{ID: "1", ThreadID: "t1", Name: "Sam"}, nil)
	if res.Key != "thread:t1" {
		t.Fatalf("expected thread:t1, got %q", res.Key)
	}
	if res.UID != "" {
		t.Fatalf("expected empty uid, got %q", res.UID)
	}
}

func TestResolveKeyVisitorPrecedence(t *testing.T) {
	cases := []struct {
		msg  ChatMessage
		want string
	}{
		{ChatMessage{ID: "1", UID: "u1", Name: "Sam", Phone: "555"}, "uid:u1"},
		{ChatMessage{ID: "2", Name: "Sam", Phone: "555"}, "guest:sam|555"},
		{ChatMessage{ID: "3", Name: "Sam"}, "guest:sam|"},
		{ChatMessage{ID: "4", Phone: "555"}, "guest:|555"},
		{ChatMessage{ID: "5", Email: "only@example.com"}, "anon:5"},
		{ChatMessage{ID: "6"}, "anon:6"},
	}
	for _, c := range cases {
		if res := ResolveKey(c.msg, nil); res.Key != c.want {
			t.Fatalf("message %s: expected %q, got %q", c.msg.ID, c.want, res.Key)
		}
	}
}

func TestResolveKeyAdminReplyChain(t *testing.T) {
	prior := map[string]Resolution{
		"v1": {Key: "uid:u1", UID: "u1", Name: "Sam"},
	}

	res := ResolveKey(ChatMessage{ID: "a1", FromAdmin: true, ReplyTo: "v1"}, prior)
	if res.Key != "uid:u1" {
		t.Fatalf("expected inherited key uid:u1, got %q", res.Key)
	}
	if res.Name != "Sam" {
		t.Fatalf("expected inherited metadata, got %+v", res)
	}
}

func TestResolveKeyAdminFallbacks(t *testing.T) {
	// Contact fields derive a guest key; a bare orphan stays isolated even
	// though it carries the operator's email.
	withContact := ResolveKey(ChatMessage{ID: "a1", FromAdmin: true, Name: "Sam", Phone: "555"}, nil)
	if withContact.Key != "guest:sam|555" {
		t.Fatalf("expected guest key, got %q", withContact.Key)
	}

	orphan := ResolveKey(ChatMessage{ID: "a2", FromAdmin: true, Email: "ops@example.com"}, nil)
	if orphan.Key != "anon:a2" {
		t.Fatalf("expected anon key, got %q", orphan.Key)
	}
}

func TestResolveKeyAdminUIDNeverGroups(t *testing.T) {
	// A message flagged only by the sentinel uid namespace is still treated
	// as admin-authored; its uid must not become a uid: key.
	res := ResolveKey(ChatMessage{ID: "a1", UID: "admin:42"}, nil)
	if res.Key != "anon:a1" {
		t.Fatalf("admin uid leaked into grouping: %q", res.Key)
	}
	if res.UID != "" {
		t.Fatalf("admin uid kept as thread identity: %+v", res)
	}
}

func TestNormalizeGuestField(t *testing.T) {
	cases := map[string]string{
		"  Sam  ":     "sam",
		"Sam   Smith": "sam smith",
		"":            "",
	}
	for in, want := range cases {
		if got := normalizeGuestField(in); got != want {
			t.Fatalf("normalize %q: expected %q, got %q", in, want, got)
		}
	}
}
