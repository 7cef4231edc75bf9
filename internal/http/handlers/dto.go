package handlers

import (
	"time"

	"spendtrack/internal/domain"
)

// DTOs keep the wire shape stable and make sure the password hash can never
// leak into a response. Timestamps serialize as RFC 3339 UTC for every
// entity.

type userDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type expenseDTO struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"userEmail"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toExpenseDTO(e *domain.Expense) expenseDTO {
	return expenseDTO{
		ID:        e.ID,
		UserEmail: e.UserEmail,
		Title:     e.Title,
		Amount:    e.Amount,
		Category:  e.Category,
		Date:      e.Date,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toExpenseDTOs(items []domain.Expense) []expenseDTO {
	out := make([]expenseDTO, 0, len(items))
	for i := range items {
		out = append(out, toExpenseDTO(&items[i]))
	}
	return out
}

type budgetDTO struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"userEmail"`
	Month     string    `json:"month"`
	Amount    float64   `json:"amount"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toBudgetDTO(b *domain.Budget) budgetDTO {
	return budgetDTO{
		ID:        b.ID,
		UserEmail: b.UserEmail,
		Month:     b.Month,
		Amount:    b.Amount,
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toBudgetDTOs(items []domain.Budget) []budgetDTO {
	out := make([]budgetDTO, 0, len(items))
	for i := range items {
		out = append(out, toBudgetDTO(&items[i]))
	}
	return out
}

type categoryDTO struct {
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCategoryDTOs(items []domain.Category) []categoryDTO {
	out := make([]categoryDTO, 0, len(items))
	for _, c := range items {
		out = append(out, categoryDTO{Name: c.Name, Color: c.Color, CreatedAt: c.CreatedAt})
	}
	return out
}
