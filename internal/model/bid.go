package model

// Bid represents one procurement bid notice
type Bid struct {
	BaseModel
	BidType               *string  `gorm:"column:bid_type;type:varchar(50)" json:"bid_type"`
	ParticipationDeadline *Date    `gorm:"column:participation_deadline;type:date" json:"participation_deadline"`
	BidDeadline           *Date    `gorm:"column:bid_deadline;type:date" json:"bid_deadline"`
	BidDate               *Date    `gorm:"column:bid_date;type:date" json:"bid_date"`
	Organization          *string  `gorm:"column:organization;type:varchar(200)" json:"organization"`
	Title                 string   `gorm:"column:title;type:varchar(500);not null" json:"title"`
	BidNumber             string   `gorm:"column:bid_number;type:varchar(100);uniqueIndex;not null" json:"bid_number"`
	Industry              *string  `gorm:"column:industry;type:varchar(100)" json:"industry"`
	Region                *string  `gorm:"column:region;type:varchar(100)" json:"region"`
	EstimatedPrice        *float64 `gorm:"column:estimated_price" json:"estimated_price"`
	BasePrice             *float64 `gorm:"column:base_price" json:"base_price"`
	WinningPrice          *float64 `gorm:"column:winning_price" json:"winning_price"`
	FirstRankCompany      *string  `gorm:"column:first_rank_company;type:varchar(200)" json:"first_rank_company"`
	BaseWinningRate       *float64 `gorm:"column:base_winning_rate" json:"base_winning_rate"`
	EstimatedWinningRate  *float64 `gorm:"column:estimated_winning_rate" json:"estimated_winning_rate"`
}

// TableName specifies the table name for Bid
func (Bid) TableName() string {
	return "bids"
}
