package models

import "time"

type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	Bio           *string   `json:"bio"`
	AvatarURL     *string   `json:"avatar_url"`
	BackgroundURL *string   `json:"background_url"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// ProfileUpdate carries the editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Bio           *string `json:"bio"`
	AvatarURL     *string `json:"avatar_url"`
	BackgroundURL *string `json:"background_url"`
}

func (p ProfileUpdate) Apply(u *User) {
	if p.Bio != nil {
		u.Bio = p.Bio
	}
	if p.AvatarURL != nil {
		u.AvatarURL = p.AvatarURL
	}
	if p.BackgroundURL != nil {
		u.BackgroundURL = p.BackgroundURL
	}
}
