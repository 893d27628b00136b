package model

import "time"

// AdminUser is an account allowed to sign in to the back-office panel.
type AdminUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
}

// DashboardCounts is the entity count block shown on the admin dashboard.
type DashboardCounts struct {
	Messages       int `json:"messages"`
	Clients        int `json:"clients"`
	ClientProjects int `json:"client_projects"`
}
