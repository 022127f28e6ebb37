package domain

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	ProfileID    *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Profile struct {
	ID        int64
	FirstName string
	LastName  string
	Age       int
	Tel       string
	Address   string
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Book struct {
	ID              int64
	Title           string
	PublicationYear int
	ISBN            string
	Author          string
	Category        string
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Copy struct {
	ID         int64
	Available  bool
	CopyNumber int
	BookID     int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Loan struct {
	ID         int64
	LoanDate   time.Time
	DueDate    time.Time
	ReturnedAt *time.Time
	Returned   bool
	UserID     int64
	CopyID     int64
}
