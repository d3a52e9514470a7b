package models

// SingletonScope is the constant value of the unique scope column of singleton settings tables.
// Because the column carries a unique index, a second row for the same table cannot be inserted.
const SingletonScope = "singleton"

// SetIdentity sets the row identifier and singleton scope before the first insert.
func (p *FortunePricing) SetIdentity(id, scope string) {
	p.ID = id
	p.Scope = scope
}

// SetIdentity sets the row identifier and singleton scope before the first insert.
func (w *WalletSettings) SetIdentity(id, scope string) {
	w.ID = id
	w.Scope = scope
}
