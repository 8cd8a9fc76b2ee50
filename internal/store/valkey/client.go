package valkey

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/szzz666/PalEasyBreeding/internal/config"
)

const (
	clientName  = "paleasy-breeding"
	pingTimeout = 3 * time.Second
)

// NewClient connects to Valkey and checks the connection with PING. The
// result cache is optional, so callers treat an error as "run without it".
func NewClient(ctx context.Context, cfg config.ValkeyConfig) (valkey.Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{cfg.Addr},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
		ClientName:  clientName,
	})
	if err != nil {
		return nil, fmt.Errorf("create valkey client %s: %w", cfg.Addr, err)
	}

	if err := Ping(ctx, client); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// Ping round-trips a PING within pingTimeout.
func Ping(ctx context.Context, client valkey.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("ping valkey: %w", err)
	}
	return nil
}
