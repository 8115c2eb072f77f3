package chat

import "strings"

// Resolution is the grouping identity computed for a single message, plus the
// best-effort display metadata collected while deriving it.
type Resolution struct {
	Key      string
	ThreadID string
	UID      string
	Name     string
	Phone    string
	Email    string
}

// ResolveKey computes the thread key for one message.
//
// Precedence, first match wins:
//  1. explicit threadId
//  2. admin messages: the reply-chain target's resolution, else guest
//     name/phone contact fields, else an isolated anonymous key
//  3. visitor messages: uid, else guest name/phone, else anonymous
//
// prior holds resolutions of other messages keyed by message id; admin
// reply-chain lookup reads it, everything else ignores it. The anonymous
// fallback guarantees a key for every message.
func ResolveKey(m ChatMessage, prior map[string]Resolution) Resolution {
	if m.ThreadID != "" {
		res := Resolution{
			Key:      "thread:" + m.ThreadID,
			ThreadID: m.ThreadID,
			Name:     m.Name,
			Phone:    m.Phone,
			Email:    m.Email,
		}
		if !IsAdminMessage(m) {
			res.UID = m.UID
		}
		return res
	}

	if IsAdminMessage(m) {
		if m.ReplyTo != "" {
			if target, ok := prior[m.ReplyTo]; ok {
				return target
			}
		}
		if m.Name != "" || m.Phone != "" {
			return Resolution{
				Key:   guestKey(m.Name, m.Phone),
				Name:  m.Name,
				Phone: m.Phone,
			}
		}
		// Orphaned admin message: never merge it into another thread.
		// Operator email is always present on admin records, so it must
		// not become an identity here.
		return Resolution{Key: "anon:" + m.ID, Email: m.Email}
	}

	res := Resolution{Name: m.Name, Phone: m.Phone, Email: m.Email}
	switch {
	case m.UID != "":
		res.Key = "uid:" + m.UID
		res.UID = m.UID
	case m.Name != "" || m.Phone != "":
		res.Key = guestKey(m.Name, m.Phone)
	default:
		res.Key = "anon:" + m.ID
	}
	return res
}

func guestKey(name, phone string) string {
	return "guest:" + normalizeGuestField(name) + "|" + normalizeGuestField(phone)
}

// normalizeGuestField lowercases and collapses whitespace so "  Sam " and
// "sam" land in the same thread.
func normalizeGuestField(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
