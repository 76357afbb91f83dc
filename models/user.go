package models

type User struct {
	Base
	FirstName       string   `json:"first_name" gorm:"not null"`
	LastName        string   `json:"last_name" gorm:"not null"`
	Email           string   `json:"email" gorm:"unique;not null"`
	Password        string   `json:"-" gorm:"not null"`
	PhoneNumber     string   `json:"phone_number"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	PostalCode      string   `json:"postal_code"`
	Country         string   `json:"country"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	ProfileImageURL string   `json:"profile_image_url"`
	IsEmailVerified bool     `json:"is_email_verified" gorm:"default:false"`
	IsPhoneVerified bool     `json:"is_phone_verified" gorm:"default:false"`
	Enabled         bool     `json:"enabled" gorm:"default:true"`
	Roles           []Role   `json:"roles,omitempty" gorm:"many2many:user_roles;"`

	ProvidedServices []Service `json:"provided_services,omitempty" gorm:"foreignKey:ProviderID"`
	Bookings         []Booking `json:"bookings,omitempty" gorm:"foreignKey:CustomerID"`
	Reviews          []Review  `json:"reviews,omitempty" gorm:"foreignKey:CustomerID"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) HasRole(name string) bool {
	for _, role := range u.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the role set flattened for token claims.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

func (u *User) IsCustomer() bool { return u.HasRole(RoleCustomer) }
func (u *User) IsProvider() bool { return u.HasRole(RoleProvider) }
func (u *User) IsAdmin() bool    { return u.HasRole(RoleAdmin) }
