package bids

import "bidtrack/internal/model"

// CreateBidRequest is the body for creating a bid
type CreateBidRequest struct {
	BidType               *string  `json:"bid_type"`
	ParticipationDeadline *string  `json:"participation_deadline"`
	BidDeadline           *string  `json:"bid_deadline"`
	BidDate               *string  `json:"bid_date"`
	Organization          *string  `json:"organization"`
	Title                 string   `json:"title" binding:"required"`
	BidNumber             string   `json:"bid_number" binding:"required"`
	Industry              *string  `json:"industry"`
	Region                *string  `json:"region"`
	EstimatedPrice        *float64 `json:"estimated_price"`
	BasePrice             *float64 `json:"base_price"`
	WinningPrice          *float64 `json:"winning_price"`
	FirstRankCompany      *string  `json:"first_rank_company"`
	BaseWinningRate       *float64 `json:"base_winning_rate"`
	EstimatedWinningRate  *float64 `json:"estimated_winning_rate"`
}

// UpdateBidRequest is the body for a partial bid update; only non-nil
// fields are applied.
type UpdateBidRequest struct {
	BidType               *string  `json:"bid_type"`
	ParticipationDeadline *string  `json:"participation_deadline"`
	BidDeadline           *string  `json:"bid_deadline"`
	BidDate               *string  `json:"bid_date"`
	Organization          *string  `json:"organization"`
	Title                 *string  `json:"title"`
	BidNumber             *string  `json:"bid_number"`
	Industry              *string  `json:"industry"`
	Region                *string  `json:"region"`
	EstimatedPrice        *float64 `json:"estimated_price"`
	BasePrice             *float64 `json:"base_price"`
	WinningPrice          *float64 `json:"winning_price"`
	FirstRankCompany      *string  `json:"first_rank_company"`
	BaseWinningRate       *float64 `json:"base_winning_rate"`
	EstimatedWinningRate  *float64 `json:"estimated_winning_rate"`
}

// updates collects the provided fields into a column update map
func (r *UpdateBidRequest) updates() (map[string]any, error) {
	u := make(map[string]any)

	setStr := func(column string, v *string) {
		if v != nil {
			u[column] = *v
		}
	}
	setFloat := func(column string, v *float64) {
		if v != nil {
			u[column] = *v
		}
	}

	setStr("bid_type", r.BidType)
	setStr("organization", r.Organization)
	setStr("title", r.Title)
	setStr("bid_number", r.BidNumber)
	setStr("industry", r.Industry)
	setStr("region", r.Region)
	setStr("first_rank_company", r.FirstRankCompany)
	setFloat("estimated_price", r.EstimatedPrice)
	setFloat("base_price", r.BasePrice)
	setFloat("winning_price", r.WinningPrice)
	setFloat("base_winning_rate", r.BaseWinningRate)
	setFloat("estimated_winning_rate", r.EstimatedWinningRate)

	for column, v := range map[string]*string{
		"participation_deadline": r.ParticipationDeadline,
		"bid_deadline":           r.BidDeadline,
		"bid_date":               r.BidDate,
	} {
		if v == nil {
			continue
		}
		d, err := model.NewDate(*v)
		if err != nil {
			return nil, err
		}
		u[column] = d
	}

	return u, nil
}

// toBid converts the create request into a Bid model
func (r *CreateBidRequest) toBid() (*model.Bid, error) {
	bid := &model.Bid{
		BidType:              r.BidType,
		Organization:         r.Organization,
		Title:                r.Title,
		BidNumber:            r.BidNumber,
		Industry:             r.Industry,
		Region:               r.Region,
		EstimatedPrice:       r.EstimatedPrice,
		BasePrice:            r.BasePrice,
		WinningPrice:         r.WinningPrice,
		FirstRankCompany:     r.FirstRankCompany,
		BaseWinningRate:      r.BaseWinningRate,
		EstimatedWinningRate: r.EstimatedWinningRate,
	}

	for _, f := range []struct {
		value  *string
		target **model.Date
	}{
		{r.ParticipationDeadline, &bid.ParticipationDeadline},
		{r.BidDeadline, &bid.BidDeadline},
		{r.BidDate, &bid.BidDate},
	} {
		if f.value == nil || *f.value == "" {
			continue
		}
		d, err := model.NewDate(*f.value)
		if err != nil {
			return nil, err
		}
		*f.target = &d
	}

	return bid, nil
}
