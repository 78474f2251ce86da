package services

import (
	"context"
	"strings"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/models"
)

type CommentInput struct {
	Name   string
	Body   string
	Status models.CommentStatus
}

func (in *CommentInput) normalize() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Body) == "" {
		return apperrors.Invalid("name and body are required")
	}
	if in.Status == "" {
		in.Status = models.CommentWaiting
	}
	if !in.Status.Valid() {
		return apperrors.Invalid("%q is not a valid comment status", in.Status)
	}
	return nil
}

type CommentService struct {
	store datastore.Store
}

func NewCommentService(store datastore.Store) *CommentService {
	return &CommentService{store: store}
}

func (s *CommentService) List(ctx context.Context, productID int64) ([]models.Comment, error) {
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.store.ListComments(ctx, productID)
}

func (s *CommentService) Get(ctx context.Context, productID, id int64) (*models.Comment, error) {
	return s.store.GetComment(ctx, productID, id)
}

func (s *CommentService) Create(ctx context.Context, productID int64, in CommentInput) (*models.Comment, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	c := &models.Comment{ProductID: productID, Name: in.Name, Body: in.Body, Status: in.Status}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, productID, id int64, in CommentInput) (*models.Comment, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	c, err := s.store.GetComment(ctx, productID, id)
	if err != nil {
		return nil, err
	}
	c.Name, c.Body, c.Status = in.Name, in.Body, in.Status
	if err := s.store.UpdateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, productID, id int64) error {
	return s.store.DeleteComment(ctx, productID, id)
}
