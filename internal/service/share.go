package service

import (
	"context"
	"errors"

	"rental-tracker-backend/internal/utils"
)

type shareService struct {
	publicURL string
}

func NewShareService(publicURL string) ShareService {
	return &shareService{publicURL: publicURL}
}

func (s *shareService) CreateShareLink(ctx context.Context, supplier string) (string, error) {
	link, err := utils.BuildShareLink(s.publicURL, supplier)
	if err != nil {
		return "", validationError("%v", err)
	}
	return link, nil
}

func (s *shareService) ResolveShareLink(ctx context.Context, link string) (string, error) {
	supplier, err := utils.ParseShareLink(link)
	if err != nil {
		if errors.Is(err, utils.ErrShareSupplierRequired) || errors.Is(err, utils.ErrInvalidShareLink) {
			return "", validationError("%v", err)
		}
		return "", err
	}
	return supplier, nil
}
