package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/domain/model"
	testhelpers "github.com/tdnguyen/storefront/internal/test"
)

type catalogFixture struct {
	products   *testhelpers.ProductRepositoryStub
	categories *testhelpers.CategoryRepositoryStub
	reviews    *testhelpers.ReviewRepositoryStub
	inventory  *testhelpers.InventoryLogRepositoryStub
	uc         *CatalogUseCase
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		products:   testhelpers.NewProductRepositoryStub(),
		categories: testhelpers.NewCategoryRepositoryStub(),
		reviews:    &testhelpers.ReviewRepositoryStub{},
		inventory:  &testhelpers.InventoryLogRepositoryStub{},
	}
	f.uc = NewCatalogUseCase(f.products, f.categories, f.reviews, f.inventory)
	return f
}

func TestListProductsVisibility(t *testing.T) {
	f := newCatalogFixture()
	f.products.Put(model.Product{Name: "Visible", Price: 100, Active: true})
	f.products.Put(model.Product{Name: "Inactive", Price: 100, Active: false})
	f.products.Put(model.Product{Name: "Deleted", Price: 100, Active: true, Deleted: true})

	visible, err := f.uc.ListProducts(context.Background(), nil, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Visible", visible[0].Name)

	all, err := f.uc.ListProducts(context.Background(), nil, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListProductsByCategory(t *testing.T) {
	f := newCatalogFixture()
	f.products.Put(model.Product{Name: "Shirt", Price: 100, CategoryID: 1, Active: true})
	f.products.Put(model.Product{Name: "Mug", Price: 50, CategoryID: 2, Active: true})

	categoryID := int64(1)
	listed, err := f.uc.ListProducts(context.Background(), &categoryID, false)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Shirt", listed[0].Name)
}

func TestProductDetail(t *testing.T) {
	f := newCatalogFixture()
	sale := int64(80)
	product := f.products.Put(model.Product{Name: "Hat", Price: 120, SalePrice: &sale, CategoryID: 1, Active: true})
	f.products.Put(model.Product{Name: "Related A", Price: 100, CategoryID: 1, Active: true})
	f.products.Put(model.Product{Name: "Hidden sibling", Price: 100, CategoryID: 1, Active: false})
	f.products.Put(model.Product{Name: "Other category", Price: 100, CategoryID: 2, Active: true})
	f.reviews.Reviews = []model.Review{{ProductID: product.ID, UserID: 7, Rating: 5, Comment: "great"}}

	detail, err := f.uc.ProductDetail(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(80), detail.Price)
	require.Len(t, detail.Reviews, 1)
	require.Len(t, detail.Related, 1)
	assert.Equal(t, "Related A", detail.Related[0].Name)
}

func TestProductDetailHidesUnavailable(t *testing.T) {
	f := newCatalogFixture()
	inactive := f.products.Put(model.Product{Name: "Inactive", Price: 100, Active: false})
	deleted := f.products.Put(model.Product{Name: "Deleted", Price: 100, Active: true, Deleted: true})

	_, err := f.uc.ProductDetail(context.Background(), inactive.ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = f.uc.ProductDetail(context.Background(), deleted.ID)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = f.uc.ProductDetail(context.Background(), 999)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestAddReview(t *testing.T) {
	f := newCatalogFixture()
	product := f.products.Put(model.Product{Name: "Hat", Price: 100, Active: true})

	review, err := f.uc.AddReview(context.Background(), 7, product.ID, 4, "  solid  ")
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "solid", review.Comment)

	for _, rating := range []int{0, 6, -1} {
		_, err := f.uc.AddReview(context.Background(), 7, product.ID, rating, "x")
		assert.ErrorIs(t, err, domainErrors.ErrInvalidReview)
	}

	_, err = f.uc.AddReview(context.Background(), 7, 999, 3, "x")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestCreateProductLogsInitialStock(t *testing.T) {
	f := newCatalogFixture()

	created, err := f.uc.CreateProduct(context.Background(), &model.Product{Name: "Shirt", Price: 100, Stock: 25, Active: true})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	require.Len(t, f.inventory.Logs, 1)
	log := f.inventory.Logs[0]
	assert.Equal(t, created.ID, log.ProductID)
	assert.Equal(t, 25, log.ChangeAmount)
	assert.Equal(t, "Initial stock", log.Reason)

	// Zero opening stock writes no log row.
	_, err = f.uc.CreateProduct(context.Background(), &model.Product{Name: "Empty", Price: 100, Active: true})
	require.NoError(t, err)
	assert.Len(t, f.inventory.Logs, 1)
}

func TestCreateProductValidation(t *testing.T) {
	f := newCatalogFixture()
	bad := int64(150)

	cases := []model.Product{
		{Name: "  ", Price: 100},
		{Name: "X", Price: -1},
		{Name: "X", Price: 100, Stock: -1},
		{Name: "X", Price: 100, SalePrice: &bad},
	}
	for _, p := range cases {
		_, err := f.uc.CreateProduct(context.Background(), &p)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidProduct)
	}
}

func TestUpdateProductLogsStockDelta(t *testing.T) {
	f := newCatalogFixture()
	created, err := f.uc.CreateProduct(context.Background(), &model.Product{Name: "Shirt", Price: 100, Stock: 10, Active: true})
	require.NoError(t, err)

	edited := *created
	edited.Stock = 4
	require.NoError(t, f.uc.UpdateProduct(context.Background(), &edited))

	require.Len(t, f.inventory.Logs, 2)
	delta := f.inventory.Logs[1]
	assert.Equal(t, -6, delta.ChangeAmount)
	assert.Equal(t, "Stock adjusted from 10 to 4", delta.Reason)

	// Price-only edits write no log row.
	edited.Price = 120
	require.NoError(t, f.uc.UpdateProduct(context.Background(), &edited))
	assert.Len(t, f.inventory.Logs, 2)
}

func TestDeleteProductIsSoft(t *testing.T) {
	f := newCatalogFixture()
	created := f.products.Put(model.Product{Name: "Shirt", Price: 100, Active: true})

	require.NoError(t, f.uc.DeleteProduct(context.Background(), created.ID))

	stored, err := f.products.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, stored.Deleted)
}

func TestCategoryCRUD(t *testing.T) {
	f := newCatalogFixture()

	created, err := f.uc.CreateCategory(context.Background(), " Apparel ", "clothes")
	require.NoError(t, err)
	assert.Equal(t, "Apparel", created.Name)

	_, err = f.uc.CreateCategory(context.Background(), "  ", "")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCategory)

	created.Description = "updated"
	require.NoError(t, f.uc.UpdateCategory(context.Background(), created))
	assert.ErrorIs(t, f.uc.UpdateCategory(context.Background(), &model.Category{ID: created.ID}), domainErrors.ErrInvalidCategory)

	listed, err := f.uc.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, f.uc.DeleteCategory(context.Background(), created.ID))
	listed, err = f.uc.Categories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestInventoryLogsList(t *testing.T) {
	f := newCatalogFixture()
	for i := 0; i < 5; i++ {
		require.NoError(t, f.inventory.Append(context.Background(), int64(i+1), 10, "Initial stock"))
	}

	logs, err := f.uc.InventoryLogs(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}
