package chat

import "fmt"

// Tracker holds the connected-user list and the single-slot typing
// indicator. A new typing event from anyone overwrites the line and its
// timer; there is never more than one line.
type Tracker struct {
	users  []string
	typing string
	gen    int
}

// SetUsers replaces the online list wholesale, as each update arrives.
func (t *Tracker) SetUsers(list []string) {
	t.users = list
}

func (t *Tracker) Users() []string {
	return t.users
}

func (t *Tracker) Typing() string {
	return t.typing
}

// SetTyping installs the indicator text and returns the generation the
// caller's expiry timer must carry. A timer for an older generation has
// been superseded and must not clear newer state.
func (t *Tracker) SetTyping(username string) int {
	t.typing = fmt.Sprintf("%s está escribiendo...", username)
	t.gen++
	return t.gen
}

// ExpireTyping clears the indicator, but only for the generation it was
// armed against.
func (t *Tracker) ExpireTyping(gen int) {
	if gen == t.gen {
		t.typing = ""
	}
}
