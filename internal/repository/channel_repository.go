package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/axellelanca/catalog/internal/models"
)

// ChannelRepository définit l'accès aux canaux de vente.
type ChannelRepository interface {
	ListChannels(ctx context.Context) ([]models.Channel, error)
	GetChannelByID(ctx context.Context, id uint) (*models.Channel, error)
	CreateChannel(ctx context.Context, channel *models.Channel) error
	UpdateChannel(ctx context.Context, channel *models.Channel) error
	DeleteChannel(ctx context.Context, id uint) error
}

type GormChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *GormChannelRepository {
	return &GormChannelRepository{db: db}
}

func (r *GormChannelRepository) ListChannels(ctx context.Context) ([]models.Channel, error) {
	var channels []models.Channel
	if err := r.db.WithContext(ctx).Order("id").Find(&channels).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve channels: %w", err)
	}
	return channels, nil
}

func (r *GormChannelRepository) GetChannelByID(ctx context.Context, id uint) (*models.Channel, error) {
	var channel models.Channel
	if err := r.db.WithContext(ctx).First(&channel, id).Error; err != nil {
		return nil, translate(err)
	}
	return &channel, nil
}

func (r *GormChannelRepository) CreateChannel(ctx context.Context, channel *models.Channel) error {
	if err := r.db.WithContext(ctx).Create(channel).Error; err != nil {
		return fmt.Errorf("failed to create channel: %w", translate(err))
	}
	return nil
}

func (r *GormChannelRepository) UpdateChannel(ctx context.Context, channel *models.Channel) error {
	if err := r.db.WithContext(ctx).Save(channel).Error; err != nil {
		return fmt.Errorf("failed to update channel %d: %w", channel.ID, translate(err))
	}
	return nil
}

// DeleteChannel supprime un canal et les prix qui y sont rattachés.
func (r *GormChannelRepository) DeleteChannel(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("channel_id = ?", id).Delete(&models.Price{}).Error; err != nil {
			return fmt.Errorf("failed to delete prices of channel %d: %w", id, err)
		}
		res := tx.Delete(&models.Channel{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete channel %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound)
		}
		return nil
	})
}
