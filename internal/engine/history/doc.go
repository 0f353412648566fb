// Package history records the transactions of a session so they can be
// undone and redone.
//
// A Transaction holds the edits of one request together with their inverse
// and the selections before and after it:
//
//	h := history.New(1000)
//	h.Push(history.NewTransaction("insert", oldText, changes, newText, before, after))
//
//	// Undo hands the inverse transaction to apply.
//	err := h.Undo(func(tx *history.Transaction) error {
//	    return session.replay(tx)
//	})
//
// The stack is bounded; the oldest entries are dropped first.
package history
