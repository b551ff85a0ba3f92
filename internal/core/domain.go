package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Entertainment Category = "Entertainment"
	Utilities     Category = "Utilities"
	Shopping      Category = "Shopping"
	Health        Category = "Health"
	Education     Category = "Education"
	Other         Category = "Other"
)

const (
	Monthly   Cycle = "Monthly"
	Quarterly Cycle = "Quarterly"
	Annual    Cycle = "Annual"
)

type (
	// Category classifies expenses and subscriptions. It is the only join key
	// between entities and is used purely for aggregation.
	Category string

	// Cycle is the recurrence period of a subscription charge.
	Cycle string

	Expense struct {
		ID          string   `json:"id"`
		Amount      Money    `json:"amount"`
		Category    Category `json:"category"`
		Date        Date     `json:"date"`
		Description string   `json:"description"`
	}

	Subscription struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		// Service is the normalized identifier used for display lookup; may be empty.
		Service         string   `json:"service"`
		Amount          Money    `json:"amount"`
		Cycle           Cycle    `json:"cycle"`
		StartDate       Date     `json:"startDate"`
		NextBillingDate Date     `json:"nextBillingDate"`
		Category        Category `json:"category"`
		Description     string   `json:"description,omitempty"`
	}

	// Budget is the singleton monthly budget. Categories is sparse and its sum
	// may be below, equal to or above Total.
	Budget struct {
		Total      Money              `json:"total"`
		Categories map[Category]Money `json:"categories"`
	}
)

var (
	ErrEmptyID          = errors.New("empty id")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidCycle     = errors.New("invalid billing cycle")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
)

var categories = []Category{Food, Transport, Entertainment, Utilities, Shopping, Health, Education, Other}

var cycleMonths = map[Cycle]int{
	Monthly:   1,
	Quarterly: 3,
	Annual:    12,
}

// Categories returns every category in declaration order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Cycles returns every billing cycle, shortest first.
func Cycles() []Cycle {
	return []Cycle{Monthly, Quarterly, Annual}
}

// ParseCategory matches s case-insensitively against the known categories.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Index returns the declaration position of c, or len(Categories()) when unknown.
func (c Category) Index() int {
	for i, known := range categories {
		if c == known {
			return i
		}
	}
	return len(categories)
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCycle matches s case-insensitively against the known cycles.
func ParseCycle(s string) (Cycle, error) {
	s = strings.TrimSpace(s)
	for c := range cycleMonths {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCycle, s)
}

func (c Cycle) Valid() bool {
	_, ok := cycleMonths[c]
	return ok
}

func (c Cycle) String() string {
	return string(c)
}

// Months is the calendar length of one cycle. Unknown cycles bill monthly.
func (c Cycle) Months() int {
	if m, ok := cycleMonths[c]; ok {
		return m
	}
	return 1
}

// MonthlyDivisor is the fixed divisor that normalizes one charge to a
// monthly rate. Calendar month length is ignored.
func (c Cycle) MonthlyDivisor() int64 {
	return int64(c.Months())
}

func (c Cycle) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

func (c *Cycle) UnmarshalText(b []byte) error {
	parsed, err := ParseCycle(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, e.Category)
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// NewSubscription derives NextBillingDate from start and cycle. The derived
// date is stored independently and never recomputed afterwards.
func NewSubscription(id, name, service string, amount Money, cycle Cycle, start Date, category Category, description string) Subscription {
	return Subscription{
		ID:              id,
		Name:            name,
		Service:         NormalizeService(service),
		Amount:          amount,
		Cycle:           cycle,
		StartDate:       start,
		NextBillingDate: Date{Time: NextBillingDate(start.Time, cycle)},
		Category:        category,
		Description:     description,
	}
}

func (s Subscription) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if err := s.Amount.Validate(); err != nil {
		return err
	}
	if !s.Cycle.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCycle, s.Cycle)
	}
	if s.StartDate.IsZero() {
		return fmt.Errorf("start date: %w", ErrInvalidDate)
	}
	if s.NextBillingDate.IsZero() {
		return fmt.Errorf("next billing date: %w", ErrInvalidDate)
	}
	if !s.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, s.Category)
	}
	return nil
}

func (b Budget) Validate() error {
	if err := b.Total.Validate(); err != nil {
		return fmt.Errorf("total: %w", err)
	}
	for c, amount := range b.Categories {
		if !c.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
		}
		if err := amount.Validate(); err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}
	}
	return nil
}

// Allocated sums the per-category sub-budgets.
func (b Budget) Allocated() Money {
	var sum Money
	for _, amount := range b.Categories {
		sum = sum.Add(amount)
	}
	return sum
}

// Unallocated is Total minus Allocated. Negative when over-allocated.
func (b Budget) Unallocated() Money {
	return b.Total.Sub(b.Allocated())
}
