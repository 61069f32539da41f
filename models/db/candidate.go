package dbmodels

type Candidate struct {
	BaseModel
	FirstName string `gorm:"type:varchar(255)"`
	LastName  string `gorm:"type:varchar(255)"`
	Email     string `gorm:"type:varchar(255);index"`
	Phone     string `gorm:"type:varchar(50)"`
}
