package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/repository"
)

// ChannelService gère les canaux de vente.
type ChannelService struct {
	channels repository.ChannelRepository
	logger   *slog.Logger
}

func NewChannelService(channels repository.ChannelRepository, logger *slog.Logger) *ChannelService {
	return &ChannelService{channels: channels, logger: logger.With("service", "channels")}
}

func (s *ChannelService) ListChannels(ctx context.Context) ([]models.Channel, error) {
	return s.channels.ListChannels(ctx)
}

func (s *ChannelService) GetChannel(ctx context.Context, id uint) (*models.Channel, error) {
	return s.channels.GetChannelByID(ctx, id)
}

func (s *ChannelService) CreateChannel(ctx context.Context, name *string) (*models.Channel, error) {
	v := &customerrors.ValidationError{}
	checkText(v, "name", name, 100, true)
	if err := failed(v); err != nil {
		return nil, err
	}

	channel := &models.Channel{Name: *name}
	if err := s.channels.CreateChannel(ctx, channel); err != nil {
		return nil, s.translateWrite(err)
	}
	return channel, nil
}

func (s *ChannelService) UpdateChannel(ctx context.Context, id uint, name *string, partial bool) (*models.Channel, error) {
	channel, err := s.channels.GetChannelByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := &customerrors.ValidationError{}
	checkText(v, "name", name, 100, !partial)
	if err := failed(v); err != nil {
		return nil, err
	}
	if name == nil {
		return channel, nil
	}

	channel.Name = *name
	if err := s.channels.UpdateChannel(ctx, channel); err != nil {
		return nil, s.translateWrite(err)
	}
	return channel, nil
}

// DeleteChannel removes the channel and every price set on it.
func (s *ChannelService) DeleteChannel(ctx context.Context, id uint) error {
	if err := s.channels.DeleteChannel(ctx, id); err != nil {
		return err
	}
	s.logger.Info("channel deleted", "id", id)
	return nil
}

func (s *ChannelService) translateWrite(err error) error {
	if errors.Is(err, customerrors.ErrDuplicate) {
		return customerrors.NewFieldError("name", msgUnique("channel", "name"))
	}
	return fmt.Errorf("failed to save channel: %w", err)
}
