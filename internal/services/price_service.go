package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/repository"
)

const msgPriceNotUnique = "The fields product, channel must make a unique set."

// PriceInput carries a new channel price.
type PriceInput struct {
	Product *uint
	Channel *uint
	Price   *decimal.Decimal
}

// PriceService gère les prix par canal.
type PriceService struct {
	prices   repository.PriceRepository
	products repository.ProductRepository
	channels repository.ChannelRepository
}

func NewPriceService(prices repository.PriceRepository, products repository.ProductRepository, channels repository.ChannelRepository) *PriceService {
	return &PriceService{prices: prices, products: products, channels: channels}
}

func (s *PriceService) ListPrices(ctx context.Context) ([]models.Price, error) {
	return s.prices.ListPrices(ctx)
}

// ListChannelPrices returns customerrors.ErrNotFound for an unknown channel.
func (s *PriceService) ListChannelPrices(ctx context.Context, channelID uint) ([]models.Price, error) {
	if _, err := s.channels.GetChannelByID(ctx, channelID); err != nil {
		return nil, err
	}
	return s.prices.ListPricesByChannel(ctx, channelID)
}

// CreatePrice sets the price of a product on a channel. A product has at most
// one price per channel.
func (s *PriceService) CreatePrice(ctx context.Context, in PriceInput) (*models.Price, error) {
	v := &customerrors.ValidationError{}
	checkMoney(v, "price", in.Price, true)

	var product *models.Product
	if in.Product == nil {
		v.Add("product", msgRequired)
	} else {
		p, err := s.products.GetProductByID(ctx, *in.Product)
		switch {
		case errors.Is(err, customerrors.ErrNotFound):
			v.Add("product", msgDoesNotExist(*in.Product))
		case err != nil:
			return nil, err
		default:
			product = p
		}
	}

	var channel *models.Channel
	if in.Channel == nil {
		v.Add("channel", msgRequired)
	} else {
		c, err := s.channels.GetChannelByID(ctx, *in.Channel)
		switch {
		case errors.Is(err, customerrors.ErrNotFound):
			v.Add("channel", msgDoesNotExist(*in.Channel))
		case err != nil:
			return nil, err
		default:
			channel = c
		}
	}

	if err := failed(v); err != nil {
		return nil, err
	}

	exists, err := s.prices.PriceExists(ctx, product.ID, channel.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, customerrors.NewNonFieldError(msgPriceNotUnique)
	}

	price := &models.Price{ProductID: product.ID, ChannelID: channel.ID, Price: *in.Price}
	if err := s.prices.CreatePrice(ctx, price); err != nil {
		if errors.Is(err, customerrors.ErrDuplicate) {
			return nil, customerrors.NewNonFieldError(msgPriceNotUnique)
		}
		return nil, fmt.Errorf("failed to save price: %w", err)
	}
	price.Product = *product
	price.Channel = *channel
	return price, nil
}
