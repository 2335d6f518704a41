package models

// UserProfileID is the fixed primary key of the singleton profile row.
const UserProfileID uint = 1

// DefaultProfileName marks a profile that has never been filled in.
const DefaultProfileName = "Your Name"

// UserProfile holds the payer identity and bank details printed on
// invoices. A single row with a fixed key is updated in place.
type UserProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName string `gorm:"size:255;not null" json:"full_name"`
	Address  string `gorm:"type:text;not null" json:"address"`

	AccountName   string `gorm:"size:255" json:"account_name,omitempty"`
	AccountNumber string `gorm:"size:64" json:"account_number,omitempty"`
	IFSCCode      string `gorm:"size:32" json:"ifsc_code,omitempty"`
	BankName      string `gorm:"size:255" json:"bank_name,omitempty"`
	AccountType   string `gorm:"size:32" json:"account_type,omitempty"`
	PAN           string `gorm:"size:32" json:"pan,omitempty"`
	LogoPath      string `gorm:"size:1024" json:"logo_path,omitempty"`
}

// Complete reports whether the profile has been filled in by the user.
func (p *UserProfile) Complete() bool {
	return p.FullName != "" && p.FullName != DefaultProfileName
}
