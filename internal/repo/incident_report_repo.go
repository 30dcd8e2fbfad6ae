package repo

import (
	"github.com/balamurugandev/safe-tradex/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewIncidentReportRepo(db *gorm.DB) *IncidentReportRepo {
	return &IncidentReportRepo{
		Repository: orz.NewRepository[models.IncidentReport, string](db),
	}
}

type IncidentReportRepo struct {
	orz.Repository[models.IncidentReport, string]
}
