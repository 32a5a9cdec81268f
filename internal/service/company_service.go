package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"buslink/internal/cache"
	"buslink/internal/model"
	"buslink/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// ProfileUpdate is the insertable company subset: exactly the fields a
// client may set. Nil pointers mean "not provided" so partial updates leave
// the other columns untouched. Identity, owner and timestamps are server-set
// and have no place here.
type ProfileUpdate struct {
	Name        *string
	Phone       *string
	Address     *string
	City        *string
	Description *string
	LogoURL     *string
}

// columns maps the provided fields to their column assignments.
func (u ProfileUpdate) columns() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Phone != nil {
		fields["phone"] = *u.Phone
	}
	if u.Address != nil {
		fields["address"] = *u.Address
	}
	if u.City != nil {
		fields["city"] = *u.City
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.LogoURL != nil {
		fields["logo_url"] = *u.LogoURL
	}
	return fields
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CompanyService handles the company-profile flow.
type CompanyService interface {
	// GetProfile returns the caller's company, or (nil, nil) when none
	// exists yet so callers can distinguish "not yet created" from failure.
	GetProfile(ctx context.Context, userID string) (*model.Company, error)
	// SaveProfile creates the caller's company or updates the existing one,
	// returning the resulting record.
	SaveProfile(ctx context.Context, userID string, update ProfileUpdate) (*model.Company, error)
}

type companyService struct {
	repo  repository.CompanyRepository
	cache *cache.Client
}

// NewCompanyService creates a new company service.
func NewCompanyService(repo repository.CompanyRepository, cache *cache.Client) CompanyService {
	return &companyService{repo: repo, cache: cache}
}

func (s *companyService) cacheKey(userID string) string {
	return fmt.Sprintf("company:user:%s", userID)
}

func (s *companyService) GetProfile(ctx context.Context, userID string) (*model.Company, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached model.Company
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	company, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find company: %w", err)
	}

	if payload, err := json.Marshal(company); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, profileCacheTTL)
	}
	return company, nil
}

// SaveProfile issues a single conflict-based upsert keyed by the unique
// owning-user column: inserting when the user has no company, applying only
// the provided fields when one exists. Exactly one write per call.
func (s *companyService) SaveProfile(ctx context.Context, userID string, update ProfileUpdate) (*model.Company, error) {
	company := &model.Company{
		UserID:      userID,
		Name:        deref(update.Name),
		Phone:       deref(update.Phone),
		Address:     deref(update.Address),
		City:        deref(update.City),
		Description: deref(update.Description),
		LogoURL:     deref(update.LogoURL),
	}

	if err := s.repo.Upsert(ctx, company, update.columns()); err != nil {
		return nil, fmt.Errorf("upsert company: %w", err)
	}

	fresh, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reload company: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	if payload, err := json.Marshal(fresh); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, profileCacheTTL)
	}
	return fresh, nil
}
