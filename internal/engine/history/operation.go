package history

import (
	"github.com/dshills/critic/internal/engine/buffer"
	"github.com/dshills/critic/internal/engine/cursor"
)

// Transaction is one undoable change of the document.
type Transaction struct {
	Name string
	// Edits turn the text before the transaction into the text after it.
	Edits []buffer.Edit
	// Inverse turns the text after the transaction back; its edits are in
	// the coordinates of the text after it.
	Inverse []buffer.Edit

	SelectionsBefore []cursor.Selection
	SelectionsAfter  []cursor.Selection
}

// NewTransaction builds a transaction from the changes that turned oldText
// into newText.
func NewTransaction(name, oldText string, changes []buffer.Change, newText string, before, after []cursor.Selection) *Transaction {
	tx := &Transaction{
		Name:             name,
		Edits:            make([]buffer.Edit, 0, len(changes)),
		Inverse:          make([]buffer.Edit, 0, len(changes)),
		SelectionsBefore: before,
		SelectionsAfter:  after,
	}
	for _, c := range changes {
		tx.Edits = append(tx.Edits, buffer.NewEdit(c.Old.Start, c.Old.End, newText[c.New.Start:c.New.End]))
		tx.Inverse = append(tx.Inverse, buffer.NewEdit(c.New.Start, c.New.End, oldText[c.Old.Start:c.Old.End]))
	}
	return tx
}

// IsEmpty reports whether the transaction changes nothing.
func (tx *Transaction) IsEmpty() bool {
	return len(tx.Edits) == 0
}

// Delta returns the change in document length.
func (tx *Transaction) Delta() int {
	d := 0
	for _, e := range tx.Edits {
		d += e.Delta()
	}
	return d
}

// Invert returns the transaction that undoes tx.
func (tx *Transaction) Invert() *Transaction {
	return &Transaction{
		Name:             tx.Name,
		Edits:            tx.Inverse,
		Inverse:          tx.Edits,
		SelectionsBefore: tx.SelectionsAfter,
		SelectionsAfter:  tx.SelectionsBefore,
	}
}

// Info describes a transaction for display.
type Info struct {
	Name  string
	Edits int
	Delta int
}
