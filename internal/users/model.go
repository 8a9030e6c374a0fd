package users

import (
	"strings"
	"time"
)

type Role string

const (
	RoleEducatee Role = "EDUCATEE"
	RoleCompany  Role = "COMPANY"
)

const VerificationVerified = "VERIFIED"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Profile struct {
	Name            string     `json:"name,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	Gender          string     `json:"gender,omitempty"`
	DOB             *time.Time `json:"dob,omitempty"`
	CompanyAddress  string     `json:"companyAddress,omitempty"`
	CompanyWebsite  string     `json:"companyWebsite,omitempty"`
	PictureURL      string     `json:"pictureUrl,omitempty"`
	TotalJobs       int        `json:"totalJobs"`
	TotalHired      int        `json:"totalHired"`
	TotalApplicants int        `json:"totalApplicants"`
	Verification    string     `json:"verification,omitempty"`
}

// Complete reports whether the fields required to apply for a job are filled.
func (p *Profile) Complete() bool {
	return p != nil &&
		strings.TrimSpace(p.Name) != "" &&
		strings.TrimSpace(p.Gender) != "" &&
		p.DOB != nil
}

// Verified reports whether the company behind the profile has been verified.
func (p *Profile) Verified() bool {
	return p != nil && p.Verification == VerificationVerified
}

type Skill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Experience struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Company   string     `json:"company,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Aggregate is a user with everything a CV is rendered from.
type Aggregate struct {
	User        User
	Profile     *Profile
	Skills      []Skill
	Experiences []Experience
}
