package cvs

import "time"

// CV is the record of one exported CV file. Every export appends a row.
type CV struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	FileURL    string    `json:"fileUrl"`
	StorageKey string    `json:"-"`
	SizeBytes  int64     `json:"sizeBytes"`
	CreatedAt  time.Time `json:"createdAt"`
}
