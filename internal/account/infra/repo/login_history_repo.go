package repo

import (
	"context"

	"gorm.io/gorm"

	"shamtool/internal/account/domain"
)

type LoginHistoryRepo struct {
	db *gorm.DB
}

func NewLoginHistoryRepo(db *gorm.DB) *LoginHistoryRepo {
	return &LoginHistoryRepo{
		db: db,
	}
}

func (r *LoginHistoryRepo) Save(ctx context.Context, history domain.LoginHistory) error {
	err := r.db.WithContext(ctx).Create(&history).Error
	if err != nil {
		// technical failure only; nothing here is a business rejection
		return domain.ErrSystemUnavailable.WithData("discord_id", history.DiscordID).WithCause(err)
	}
	return nil
}

// Recent returns the latest logins of one Discord user, newest first.
func (r *LoginHistoryRepo) Recent(ctx context.Context, discordID string, limit int) ([]domain.LoginHistory, error) {
	var out []domain.LoginHistory
	err := r.db.WithContext(ctx).
		Where("discord_id = ?", discordID).
		Order("ctime DESC").Order("id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("discord_id", discordID).WithCause(err)
	}
	return out, nil
}
