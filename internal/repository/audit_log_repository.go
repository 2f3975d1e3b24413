package repository

import (
	"context"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *model.AuditLog) error
}
