package core

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// MonthTotal is the expense total of one calendar month, labelled with the
// short month name.
type MonthTotal struct {
	Year  int
	Month int // 1-12
	Label string
	Total Money
}

// Snapshot is the whole persisted financial state loaded at once.
type Snapshot struct {
	Expenses      []Expense
	Subscriptions []Subscription
	Budget        *Budget
}
