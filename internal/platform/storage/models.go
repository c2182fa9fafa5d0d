package storage

import (
	"github.com/MichalMitros/catalog-sync/internal/platform/models"

	pgmodels "github.com/MichalMitros/catalog-sync/internal/platform/storage/gen/postgres/public/model"
)

func toDBRun(run *models.Run) *pgmodels.SyncRun {
	return &pgmodels.SyncRun{
		ID:                 int32(run.ID),
		Tenant:             run.Scope.Tenant,
		Store:              run.Scope.Store,
		Force:              run.Force,
		CreatedAt:          run.CreatedAt,
		FinishedAt:         run.FinishedAt,
		Success:            run.IsSuccess,
		StatusMessage:      run.StatusMessage,
		FetchedProducts:    run.FetchedProducts,
		PropagatedProducts: run.PropagatedProducts,
		Chunks:             run.Chunks,
	}
}

func fromDBRun(run *pgmodels.SyncRun) *models.Run {
	return &models.Run{
		ID: int(run.ID),
		Scope: models.Scope{
			Tenant: run.Tenant,
			Store:  run.Store,
		},
		Force:              run.Force,
		CreatedAt:          run.CreatedAt,
		FinishedAt:         run.FinishedAt,
		IsSuccess:          run.Success,
		StatusMessage:      run.StatusMessage,
		FetchedProducts:    run.FetchedProducts,
		PropagatedProducts: run.PropagatedProducts,
		Chunks:             run.Chunks,
	}
}
