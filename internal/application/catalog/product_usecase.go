package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/domain/repository"
)

// ProductUseCase catálogo público y su administración. El stock que se fija aquí es absoluto;
// el único descuento por venta ocurre en el checkout.
type ProductUseCase struct {
	repo    repository.ProductRepository
	timeout time.Duration
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, timeout time.Duration) *ProductUseCase {
	return &ProductUseCase{repo: repo, timeout: timeout}
}

// List catálogo completo, o solo lo que tiene existencias si InStockOnly.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ListProductsQuery) (*dto.ProductListResponse, error) {
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()
	list, err := uc.repo.List(ctx, repository.ProductFilter{InStockOnly: in.InStockOnly})
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Create agrega un producto al catálogo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if verr := validateProduct(in); verr != nil {
		return nil, verr
	}
	now := time.Now().UTC()
	p := &entity.Product{ID: uuid.New().String(), CreatedAt: now}
	apply(p, in, now)

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update reemplaza los datos del producto. Los pedidos ya hechos conservan su copia.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if verr := validateProduct(in); verr != nil {
		return nil, verr
	}
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	apply(p, in, time.Now().UTC())
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.timeout)
}

func validateProduct(in dto.ProductRequest) *domain.ValidationError {
	verr := dto.Validate(in)
	if verr == nil {
		verr = domain.NewValidationError()
	}
	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "es obligatorio")
	}
	if in.Price.IsNegative() {
		verr.Add("price", "no puede ser negativo")
	}
	if in.Stock < 0 {
		verr.Add("stock", "no puede ser negativo")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

func apply(p *entity.Product, in dto.ProductRequest, now time.Time) {
	p.Name = strings.TrimSpace(in.Name)
	p.Brand = strings.TrimSpace(in.Brand)
	p.Category = strings.TrimSpace(in.Category)
	p.Price = in.Price
	p.Stock = in.Stock
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	p.Description = in.Description
	p.Specs = cleanSpecs(in.Specs)
	p.UpdatedAt = now
}

func cleanSpecs(specs []string) []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	specs := p.Specs
	if specs == nil {
		specs = []string{}
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		InStock:     p.InStock(),
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Specs:       specs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
