package api

import "time"

// The entities below mirror the REST resources one to one. The server
// is the system of record; the dashboard never derives state locally.

type Admin struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"` // admin | superAdmin
	PhoneNumber string    `json:"phoneNumber"`
	IsActive    bool      `json:"isActive"`
	IsDeleted   bool      `json:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Teacher struct {
	ID            int64   `json:"id"`
	Email         string  `json:"email"`
	PhoneNumber   string  `json:"phoneNumber"`
	FullName      string  `json:"fullName"`
	CardNumber    string  `json:"cardNumber"`
	Specification string  `json:"specification"` // english|french|spanish|italian|german
	Level         string  `json:"level"`         // b2|c1|c2
	HourPrice     float64 `json:"hourPrice"`
	Rating        float64 `json:"rating"`
	Experience    int     `json:"experience"`
	PortfolioLink string  `json:"portfolioLink"`
	ImageURL      string  `json:"imageUrl"`
	IsActive      bool    `json:"isActive"`
}

type Student struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PhoneNumber   string `json:"phoneNumber"`
	TgID          string `json:"tgId"`
	TgUsername    string `json:"tgUsername"`
	IsActive      bool   `json:"isActive"`
	IsBlocked     bool   `json:"isBlocked"`
	BlockedReason string `json:"blockedReason"`
}

type Lesson struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	TeacherID int64     `json:"teacherId"`
	StudentID int64     `json:"studentId"`
	Status    string    `json:"status"` // available|booked|completed|cancelled
	Price     float64   `json:"price"`
	IsPaid    bool      `json:"isPaid"`
}

type Transaction struct {
	ID        int64   `json:"id"`
	LessonID  int64   `json:"lessonId"`
	StudentID int64   `json:"studentId"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"` // pending|paid|cancelled
	Reason    string  `json:"reason"`
}

type TeacherPayment struct {
	ID                int64   `json:"id"`
	TeacherID         int64   `json:"teacherId"`
	LessonID          int64   `json:"lessonId"`
	TotalLessonAmount float64 `json:"totalLessonAmount"`
	PlatformComission float64 `json:"platformComission"`
	PlatformAmount    float64 `json:"platformAmount"`
	TeacherAmount     float64 `json:"teacherAmount"`
	PaidBy            string  `json:"paidBy"`
	IsCanceled        bool    `json:"isCanceled"`
	CanceledReason    string  `json:"canceledReason"`
}
