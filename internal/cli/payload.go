package cli

import (
	"context"
	"encoding/json"

	"github.com/sealvault/sealvault-core/internal/common"
	"github.com/sealvault/sealvault-core/internal/db/repositories/dapps"
	"github.com/sealvault/sealvault-core/internal/dbx"
)

// payloadDoc is the plaintext backup payload before encryption: the synced
// wallet entities serialized as JSON. Restore replays it through the
// idempotent repositories, so applying the same payload twice is harmless.
type payloadDoc struct {
	Dapps []payloadDapp `json:"dapps"`
}

type payloadDapp struct {
	URL string `json:"url"`
}

func (a *App) exportPayload(ctx context.Context) ([]byte, error) {
	var doc payloadDoc
	err := dbx.WithReadTx(ctx, a.res.DB(), func(ctx context.Context, tx dbx.DBTX) error {
		rows, err := dapps.NewSQLiteRepository(tx).ListAll(ctx)
		if err != nil {
			return err
		}
		for _, row := range rows {
			doc.Dapps = append(doc.Dapps, payloadDapp{URL: row.URL})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, common.Fatalf("serialize backup payload: %w", err)
	}
	return data, nil
}

func (a *App) importPayload(ctx context.Context, payload []byte) error {
	var doc payloadDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return common.Fatalf("parse backup payload: %w", err)
	}

	return dbx.WithTx(ctx, a.res.DB(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := dapps.NewSQLiteRepository(tx)
		for _, d := range doc.Dapps {
			if _, err := repo.CreateIfNotExists(ctx, d.URL); err != nil {
				return err
			}
		}
		return nil
	})
}
