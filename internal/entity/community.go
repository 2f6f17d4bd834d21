package entity

type Community struct {
	Base
	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`

	Handle       string `gorm:"unique"`
	DisplayName  string
	Introduction []byte `gorm:"type:longtext"`
}
