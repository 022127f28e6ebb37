package db

import "time"

type UserModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password;not null"`
	Role         string    `gorm:"not null"`
	ProfileID    *int64    `gorm:"index"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `gorm:"column:update_at;not null"`
}

func (UserModel) TableName() string { return "users" }

type ProfileModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	FirstName string    `gorm:"not null"`
	LastName  string    `gorm:"not null"`
	Age       int       `gorm:"not null"`
	Tel       string    `gorm:"not null"`
	Address   string    `gorm:"not null"`
	UserID    int64     `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:update_at;not null"`
}

func (ProfileModel) TableName() string { return "profile_users" }

type BookModel struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	Title           string    `gorm:"not null"`
	PublicationYear int       `gorm:"column:publication_year;not null"`
	ISBN            string    `gorm:"column:isbn;index;not null"`
	Author          string    `gorm:"not null"`
	Category        string    `gorm:"not null"`
	ImageURL        string    `gorm:"column:image_url"`
	CreatedAt       time.Time `gorm:"column:created_at;not null"`
	UpdatedAt       time.Time `gorm:"column:update_at;not null"`
}

func (BookModel) TableName() string { return "books" }

type CopyModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Available  bool      `gorm:"not null;default:true"`
	CopyNumber int       `gorm:"column:copy_number;not null"`
	BookID     int64     `gorm:"index;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time `gorm:"column:update_at;not null"`
}

func (CopyModel) TableName() string { return "copies" }

type LoanModel struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	LoanDate   time.Time  `gorm:"column:loan_date;not null"`
	DueDate    time.Time  `gorm:"column:loan_return;not null"`
	ReturnedAt *time.Time `gorm:"column:real_day_return"`
	Returned   bool       `gorm:"column:is_returned;not null;default:false"`
	UserID     int64      `gorm:"index;not null"`
	CopyID     int64      `gorm:"index"`
}

func (LoanModel) TableName() string { return "loans" }
