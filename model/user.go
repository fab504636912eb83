package models

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
}

// UserPatch updates only the non-nil fields.
type UserPatch struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Role      *string `json:"role,omitempty"`
}

func (u User) Apply(p UserPatch) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	return u
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool { return t == ThemeLight || t == ThemeDark }

type Notifications struct {
	LowStock      bool `json:"low_stock"`
	WeeklySummary bool `json:"weekly_summary"`
}

type Settings struct {
	Theme         Theme         `json:"theme"`
	Notifications Notifications `json:"notifications"`
}

type NotificationsPatch struct {
	LowStock      *bool `json:"low_stock,omitempty"`
	WeeklySummary *bool `json:"weekly_summary,omitempty"`
}

type SettingsPatch struct {
	Theme         *Theme              `json:"theme,omitempty"`
	Notifications *NotificationsPatch `json:"notifications,omitempty"`
}

// Apply merges p into s. Notification flags are merged one by one, so
// setting one flag never resets the other.
func (s Settings) Apply(p SettingsPatch) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if n := p.Notifications; n != nil {
		if n.LowStock != nil {
			s.Notifications.LowStock = *n.LowStock
		}
		if n.WeeklySummary != nil {
			s.Notifications.WeeklySummary = *n.WeeklySummary
		}
	}
	return s
}
