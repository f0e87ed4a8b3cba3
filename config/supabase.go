package config

import (
	"errors"
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// NewSupabase creates the service-role client used to validate admin tokens.
func NewSupabase(cfg Config) (*supabase.Client, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
		return nil, errors.New("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY must be set")
	}
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create Supabase client: %w", err)
	}
	return client, nil
}
