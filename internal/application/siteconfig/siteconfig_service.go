package siteconfig

import (
	"context"

	"github.com/podplatform/backend/internal/domain/siteconfig"
	"go.uber.org/zap"
)

// SiteConfigService manages editable site settings and the payment
// processor configuration stored alongside them
type SiteConfigService struct {
	repo   siteconfig.Repository
	logger *zap.Logger
}

// NewSiteConfigService creates a new site config service
func NewSiteConfigService(repo siteconfig.Repository, logger *zap.Logger) *SiteConfigService {
	return &SiteConfigService{repo: repo, logger: logger}
}

// List returns every setting ordered by group and key. An empty store is
// seeded with the home page defaults first.
func (s *SiteConfigService) List(ctx context.Context) ([]siteconfig.Setting, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		defaults := siteconfig.Defaults()
		if err := s.repo.UpsertAll(ctx, defaults); err != nil {
			return nil, err
		}
		s.logger.Info("Seeded default site settings", zap.Int("count", len(defaults)))
	}

	settings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return maskSecrets(settings), nil
}

// BulkUpdate creates or updates each setting by key in one transaction.
// Any invalid setting rejects the whole batch.
func (s *SiteConfigService) BulkUpdate(ctx context.Context, input []siteconfig.Setting) (int, error) {
	normalized := make([]siteconfig.Setting, 0, len(input))
	for _, in := range input {
		setting, err := in.Normalize()
		if err != nil {
			return 0, err
		}
		normalized = append(normalized, setting)
	}
	if len(normalized) == 0 {
		return 0, nil
	}

	// a masked secret sent back from the editor keeps the stored value
	stored, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	byKey := make(map[string]string, len(stored))
	for _, st := range stored {
		byKey[st.Key] = st.Value
	}
	for i, st := range normalized {
		if st.IsSecret() && siteconfig.IsMasked(st.Value) {
			normalized[i].Value = byKey[st.Key]
		}
	}

	if err := s.repo.UpsertAll(ctx, normalized); err != nil {
		return 0, err
	}
	s.logger.Info("Site settings updated", zap.Int("count", len(normalized)))
	return len(normalized), nil
}

// GetPaymentConfig returns the payment configuration with secrets masked
func (s *SiteConfigService) GetPaymentConfig(ctx context.Context) (siteconfig.PaymentConfig, error) {
	cfg, err := s.LoadPaymentConfig(ctx)
	if err != nil {
		return siteconfig.PaymentConfig{}, err
	}
	return cfg.Masked(), nil
}

// LoadPaymentConfig returns the unmasked payment configuration for server
// side use
func (s *SiteConfigService) LoadPaymentConfig(ctx context.Context) (siteconfig.PaymentConfig, error) {
	settings, err := s.repo.FindByGroup(ctx, siteconfig.PaymentGroup)
	if err != nil {
		return siteconfig.PaymentConfig{}, err
	}
	return siteconfig.PaymentConfigFromSettings(settings), nil
}

// UpdatePaymentConfig stores the payment configuration. Secrets left empty
// or masked keep their stored value. The masked result is returned.
func (s *SiteConfigService) UpdatePaymentConfig(ctx context.Context, cfg siteconfig.PaymentConfig) (siteconfig.PaymentConfig, error) {
	stored, err := s.LoadPaymentConfig(ctx)
	if err != nil {
		return siteconfig.PaymentConfig{}, err
	}
	merged := cfg.MergeSecrets(stored)
	if err := s.repo.UpsertAll(ctx, merged.Settings()); err != nil {
		return siteconfig.PaymentConfig{}, err
	}
	s.logger.Info("Payment configuration updated",
		zap.Bool("stripe_enabled", merged.StripeEnabled),
		zap.Bool("paypal_enabled", merged.PayPalEnabled),
	)
	return merged.Masked(), nil
}

func maskSecrets(settings []siteconfig.Setting) []siteconfig.Setting {
	for i, st := range settings {
		if st.IsSecret() {
			settings[i].Value = siteconfig.MaskSecret(st.Value)
		}
	}
	return settings
}
