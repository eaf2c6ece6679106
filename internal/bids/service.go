// Package bids implements bid record business logic on top of gorm.
package bids

import (
	"errors"
	"fmt"

	"bidtrack/internal/ingest"
	"bidtrack/internal/model"
	"bidtrack/internal/utils"

	"gorm.io/gorm"
)

// ErrDuplicateNumber is returned when a bid number already exists
var ErrDuplicateNumber = errors.New("bid number already exists")

// Service handles bid record operations
type Service struct {
	db *gorm.DB
}

// NewService creates a new bid service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetByID retrieves a bid by ID, nil if absent
func (s *Service) GetByID(id int) (*model.Bid, error) {
	var bid model.Bid
	if err := s.db.First(&bid, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}
	return &bid, nil
}

// GetByNumber retrieves a bid by its unique bid number, nil if absent
func (s *Service) GetByNumber(bidNumber string) (*model.Bid, error) {
	var bid model.Bid
	if err := s.db.Where("bid_number = ?", bidNumber).First(&bid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bid by number: %w", err)
	}
	return &bid, nil
}

// List returns a page of bids plus the total count
func (s *Service) List(skip, limit int) ([]model.Bid, int64, error) {
	var total int64
	if err := s.db.Model(&model.Bid{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bids: %w", err)
	}

	var items []model.Bid
	if err := s.db.Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bids: %w", err)
	}
	return items, total, nil
}

// Create inserts a new bid after checking bid number uniqueness
func (s *Service) Create(bid *model.Bid) error {
	existing, err := s.GetByNumber(bid.BidNumber)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateNumber
	}

	if err := s.db.Create(bid).Error; err != nil {
		return fmt.Errorf("failed to create bid: %w", err)
	}
	return nil
}

// Update applies the given column updates to a bid. The duplicate
// number check only re-runs when bid_number is among the updates.
// Returns nil, nil when the bid does not exist.
func (s *Service) Update(id int, updates map[string]any) (*model.Bid, error) {
	if number, ok := updates["bid_number"].(string); ok {
		existing, err := s.GetByNumber(number)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrDuplicateNumber
		}
	}

	bid, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bid == nil {
		return nil, nil
	}

	if len(updates) > 0 {
		if err := s.db.Model(bid).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update bid: %w", err)
		}
	}
	return s.GetByID(id)
}

// Delete removes a bid, reporting whether a row was removed
func (s *Service) Delete(id int) (bool, error) {
	res := s.db.Delete(&model.Bid{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete bid: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll removes every bid (used for replace-all uploads) and
// returns the number removed, counted before deletion.
func (s *Service) DeleteAll() (int64, error) {
	var count int64
	if err := s.db.Model(&model.Bid{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bids: %w", err)
	}
	if err := s.db.Where("1 = 1").Delete(&model.Bid{}).Error; err != nil {
		return 0, fmt.Errorf("failed to delete bids: %w", err)
	}
	return count, nil
}

// SearchParams are the supported search filters
type SearchParams struct {
	Keyword      string // partial match on title
	Organization string // exact match
	Industry     string // exact match
	Region       string // exact match
	Skip         int
	Limit        int
}

// Search filters bids by the given parameters
func (s *Service) Search(p SearchParams) ([]model.Bid, int64, error) {
	query := s.db.Model(&model.Bid{})

	if p.Keyword != "" {
		query = query.Where("title LIKE ?", "%"+p.Keyword+"%")
	}
	if p.Organization != "" {
		query = query.Where("organization = ?", p.Organization)
	}
	if p.Industry != "" {
		query = query.Where("industry = ?", p.Industry)
	}
	if p.Region != "" {
		query = query.Where("region = ?", p.Region)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	var items []model.Bid
	if err := query.Offset(p.Skip).Limit(p.Limit).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search bids: %w", err)
	}
	return items, total, nil
}

// Organizations returns the distinct ordering organizations
func (s *Service) Organizations() ([]string, error) {
	return s.distinct("organization")
}

// Industries returns the distinct industries
func (s *Service) Industries() ([]string, error) {
	return s.distinct("industry")
}

// Regions returns the distinct regions
func (s *Service) Regions() ([]string, error) {
	return s.distinct("region")
}

func (s *Service) distinct(column string) ([]string, error) {
	var values []string
	if err := s.db.Model(&model.Bid{}).
		Distinct().
		Where(column + " IS NOT NULL").
		Pluck(column, &values).Error; err != nil {
		return nil, fmt.Errorf("failed to list distinct %s: %w", column, err)
	}
	return values, nil
}

// Statistics aggregates counts and averages over all bids
type Statistics struct {
	TotalCount                  int64   `json:"total_count"`
	AverageEstimatedPrice       float64 `json:"average_estimated_price"`
	AverageBasePrice            float64 `json:"average_base_price"`
	AverageWinningPrice         float64 `json:"average_winning_price"`
	AverageBaseWinningRate      float64 `json:"average_base_winning_rate"`
	AverageEstimatedWinningRate float64 `json:"average_estimated_winning_rate"`
}

// Statistics computes bid statistics. NULL cells are excluded from the
// averages by SQL AVG semantics; an empty table yields zeros.
func (s *Service) Statistics() (*Statistics, error) {
	var stats Statistics
	if err := s.db.Model(&model.Bid{}).
		Select(`COUNT(*) AS total_count,
			COALESCE(AVG(estimated_price), 0) AS average_estimated_price,
			COALESCE(AVG(base_price), 0) AS average_base_price,
			COALESCE(AVG(winning_price), 0) AS average_winning_price,
			COALESCE(AVG(base_winning_rate), 0) AS average_base_winning_rate,
			COALESCE(AVG(estimated_winning_rate), 0) AS average_estimated_winning_rate`).
		Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return &stats, nil
}

// BulkResult reports the outcome of a bulk create
type BulkResult struct {
	Total   int      `json:"total"`
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Reasons []string `json:"reasons,omitempty"`
}

// BulkCreate persists ingested records one by one. Rows with a missing
// required field or a duplicate bid number are skipped with a reason;
// the batch never aborts on a per-row problem.
func (s *Service) BulkCreate(records []ingest.Record) (*BulkResult, error) {
	result := &BulkResult{Total: len(records)}

	for i, rec := range records {
		bid, err := RecordToBid(rec)
		if err != nil {
			result.Skipped++
			result.Reasons = append(result.Reasons, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		if err := s.Create(bid); err != nil {
			if errors.Is(err, ErrDuplicateNumber) {
				result.Skipped++
				result.Reasons = append(result.Reasons, fmt.Sprintf("row %d: duplicate bid number %q", i+1, bid.BidNumber))
				continue
			}
			return result, err
		}
		result.Created++
	}
	return result, nil
}

// RecordToBid converts a canonical ingest record into a Bid model.
// Title and bid number must be non-empty; every other field degrades
// to NULL when absent.
func RecordToBid(rec ingest.Record) (*model.Bid, error) {
	title := rec.StringField("title")
	bidNumber := rec.StringField("bid_number")
	if title == "" {
		return nil, errors.New("title is required")
	}
	if bidNumber == "" {
		return nil, errors.New("bid_number is required")
	}

	bid := &model.Bid{
		Title:                title,
		BidNumber:            bidNumber,
		BidType:              utils.StrPtr(rec.StringField("bid_type")),
		Organization:         utils.StrPtr(rec.StringField("organization")),
		Industry:             utils.StrPtr(rec.StringField("industry")),
		Region:               utils.StrPtr(rec.StringField("region")),
		FirstRankCompany:     utils.StrPtr(rec.StringField("first_rank_company")),
		EstimatedPrice:       rec.FloatField("estimated_price"),
		BasePrice:            rec.FloatField("base_price"),
		WinningPrice:         rec.FloatField("winning_price"),
		BaseWinningRate:      rec.FloatField("base_winning_rate"),
		EstimatedWinningRate: rec.FloatField("estimated_winning_rate"),
	}

	bid.ParticipationDeadline = datePtr(rec.StringField("participation_deadline"))
	bid.BidDeadline = datePtr(rec.StringField("bid_deadline"))
	bid.BidDate = datePtr(rec.StringField("bid_date"))

	return bid, nil
}

func datePtr(iso string) *model.Date {
	if iso == "" {
		return nil
	}
	d, err := model.NewDate(iso)
	if err != nil {
		return nil
	}
	return &d
}
