package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/policies"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// PageInput is the admin payload for a static page.
type PageInput struct {
	Title   string `json:"title"   validate:"required,max=255"`
	Content string `json:"content"`
}

type PageService struct {
	pages *repositories.PageRepository
}

func NewPageService() *PageService {
	return &PageService{pages: repositories.NewPageRepository()}
}

func (s *PageService) Get(ctx context.Context, slug string) (models.PageContent, error) {
	page, err := s.pages.FindBySlug(ctx, normalizeSlug(slug))
	if orm.IsNotFound(err) {
		return models.PageContent{}, ErrNotFound
	}
	return page, err
}

// Upsert creates or replaces the page at slug. Admin only. The bool reports
// whether a new page was created.
func (s *PageService) Upsert(ctx context.Context, p models.Principal, slug string, in PageInput) (models.PageContent, bool, error) {
	if !policies.IsAdmin(p) {
		return models.PageContent{}, false, ErrForbidden
	}
	slug = normalizeSlug(slug)
	if slug == "" {
		return models.PageContent{}, false, invalid("slug", "This field is required.")
	}

	page, err := s.pages.FindBySlug(ctx, slug)
	created := orm.IsNotFound(err)
	if err != nil && !created {
		return models.PageContent{}, false, fmt.Errorf("load page: %w", err)
	}

	page.Slug = slug
	page.Title = strings.TrimSpace(in.Title)
	page.Content = in.Content
	if err := s.pages.Save(ctx, &page); err != nil {
		return models.PageContent{}, false, fmt.Errorf("save page: %w", err)
	}
	return page, created, nil
}

func normalizeSlug(s string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(s), "/"))
}

const (
	referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	referralLength   = 8
)

type AffiliateService struct {
	affiliates *repositories.AffiliateRepository
}

func NewAffiliateService() *AffiliateService {
	return &AffiliateService{affiliates: repositories.NewAffiliateRepository()}
}

// List returns every affiliate for admins and the caller's own otherwise.
func (s *AffiliateService) List(ctx context.Context, p models.Principal) ([]models.Affiliate, error) {
	scope, err := policies.OwnedScope(p, "user_id")
	if err != nil {
		return nil, err
	}
	return s.affiliates.List(ctx, scope)
}

// Join creates p's affiliate account with a fresh referral code.
func (s *AffiliateService) Join(ctx context.Context, p models.Principal) (models.Affiliate, error) {
	exists, err := s.affiliates.ExistsForUser(ctx, p.UserID)
	if err != nil {
		return models.Affiliate{}, fmt.Errorf("check affiliate: %w", err)
	}
	if exists {
		return models.Affiliate{}, ErrAffiliateExists
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return models.Affiliate{}, err
	}

	a := models.Affiliate{UserID: p.UserID, ReferralCode: code, Earnings: decimal.Zero}
	if err := s.affiliates.Create(ctx, &a); err != nil {
		if lostInsertRace(ctx, err, func(ctx context.Context) (bool, error) {
			return s.affiliates.ExistsForUser(ctx, p.UserID)
		}) {
			return models.Affiliate{}, ErrAffiliateExists
		}
		return models.Affiliate{}, fmt.Errorf("create affiliate: %w", err)
	}
	return a, nil
}

func (s *AffiliateService) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := ReferralCode()
		if err != nil {
			return "", err
		}
		taken, err := s.affiliates.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check referral code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("referral code: no free code after 5 attempts")
}

// ReferralCode returns a random code over an alphabet without 0/O/1/I.
func ReferralCode() (string, error) {
	buf := make([]byte, referralLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("referral code: %w", err)
	}
	for i, b := range buf {
		buf[i] = referralAlphabet[int(b)%len(referralAlphabet)]
	}
	return string(buf), nil
}
