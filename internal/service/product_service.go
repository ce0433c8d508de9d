package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"
	"jewelry_store/internal/repository"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var (
	ErrInvalidFileFormat = errors.New("invalid file format. only .jpg, .jpeg, .png are allowed")
	ErrFileSizeExceeded  = errors.New("file size exceeds limit")
)

const (
	MaxFileSize = 5 * 1024 * 1024 // 5MB
	thumbWidth  = 320
)

// ProductService manages the inventory
type ProductService interface {
	CreateProduct(ctx context.Context, req model.ProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context, filters model.ProductFilters) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id int64, req model.ProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	// UploadImage stores a product photo and a storefront thumbnail under uploadsDir.
	UploadImage(ctx context.Context, id int64, file *multipart.FileHeader) (*model.Product, error)
}

type productService struct {
	repo       repository.ProductRepository
	uploadsDir string
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository, uploadsDir string) ProductService {
	return &productService{repo: repo, uploadsDir: uploadsDir}
}

func validateProduct(req model.ProductRequest) error {
	if !req.Gram.IsPositive() {
		return fmt.Errorf("%w: gram must be greater than zero", ledger.ErrValidation)
	}
	if req.PurchasePriceToAfn.IsNegative() {
		return fmt.Errorf("%w: purchase price cannot be negative", ledger.ErrValidation)
	}
	if req.SalePrice != nil && !req.SalePrice.IsPositive() {
		return fmt.Errorf("%w: sale price must be greater than zero", ledger.ErrValidation)
	}
	return nil
}

func applyProductRequest(p *model.Product, req model.ProductRequest) {
	p.ProductName = req.ProductName
	p.Karat = req.Karat
	p.Gram = req.Gram
	p.PurchasePriceToAfn = req.PurchasePriceToAfn
	p.SalePrice = req.SalePrice
	p.Currency = req.Currency
	if p.Currency == "" {
		p.Currency = model.BaseCurrency
	}
	p.SupplierID = req.SupplierID
	if req.SortOrder != nil {
		p.SortOrder = *req.SortOrder
	}
}

func (s *productService) CreateProduct(ctx context.Context, req model.ProductRequest) (*model.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &model.Product{CreatedAt: now, UpdatedAt: now}
	applyProductRequest(p, req)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product in repo: %w", err)
	}
	return p, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %d", ledger.ErrNotFound, id)
	}
	return p, nil
}

func (s *productService) ListProducts(ctx context.Context, filters model.ProductFilters) ([]model.Product, error) {
	products, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list products from repo: %w", err)
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req model.ProductRequest) (*model.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsSold {
		return nil, fmt.Errorf("%w: product %d is already sold", ledger.ErrConflict, id)
	}
	applyProductRequest(p, req)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product in repo: %w", err)
	}
	return p, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if p.IsSold {
		return fmt.Errorf("%w: product %d is sold and kept for its receipt", ledger.ErrConflict, id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product in repo: %w", err)
	}
	return nil
}

func (s *productService) UploadImage(ctx context.Context, id int64, fileHeader *multipart.FileHeader) (*model.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if fileHeader.Size > MaxFileSize {
		return nil, ErrFileSizeExceeded
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
	if !allowedExts[ext] {
		return nil, ErrInvalidFileFormat
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrInvalidFileFormat
		}
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	relDir := path.Join("products", strconv.FormatInt(id, 10))
	productDir := filepath.Join(s.uploadsDir, filepath.FromSlash(relDir))
	if err := os.MkdirAll(productDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	// stored names are random so a re-upload never serves a stale cached image
	name := uuid.NewString()
	imageRel := path.Join(relDir, name+ext)
	thumbRel := path.Join(relDir, name+"_thumb.jpg")
	imagePath := filepath.Join(s.uploadsDir, filepath.FromSlash(imageRel))
	thumbPath := filepath.Join(s.uploadsDir, filepath.FromSlash(thumbRel))

	if err := imaging.Save(img, imagePath); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(80)); err != nil {
		os.Remove(imagePath)
		return nil, fmt.Errorf("failed to save thumbnail: %w", err)
	}

	if err := s.repo.UpdateImage(ctx, id, imageRel, thumbRel); err != nil {
		os.Remove(imagePath)
		os.Remove(thumbPath)
		return nil, fmt.Errorf("failed to update product image: %w", err)
	}

	if p.ImagePath != nil {
		os.Remove(filepath.Join(s.uploadsDir, filepath.FromSlash(*p.ImagePath)))
	}
	if p.ThumbPath != nil {
		os.Remove(filepath.Join(s.uploadsDir, filepath.FromSlash(*p.ThumbPath)))
	}
	p.ImagePath = &imageRel
	p.ThumbPath = &thumbRel
	return p, nil
}
