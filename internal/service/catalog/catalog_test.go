package catalog

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hariskhan14/bazario/internal/auth"
	"github.com/hariskhan14/bazario/internal/models"
	"github.com/hariskhan14/bazario/internal/repo"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
	))
	return NewService(repo.NewGormRepo(db), nil, nil), db
}

func adminSession() *auth.Session { return &auth.Session{UserID: 9, Role: auth.RoleAdmin} }

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func perfumeInput() CreateProductInput {
	return CreateProductInput{
		Name:   "Oud Royale",
		Brand:  "Junaid Jamshed",
		Gender: models.GenderUnisex,
		Variants: []VariantInput{
			{Size: "50ml", Price: d(4500), Stock: 10},
			{Size: "100ml", Price: d(7800), Stock: 4},
		},
	}
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateProduct(context.Background(), &auth.Session{UserID: 1, Role: "user"}, perfumeInput())
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateProduct(context.Background(), nil, perfumeInput())
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCreateProductRequiresVariant(t *testing.T) {
	svc, _ := newTestService(t)

	in := perfumeInput()
	in.Variants = nil
	_, err := svc.CreateProduct(context.Background(), adminSession(), in)
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateProductDerivesSlugSKUAndBasePrice(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(context.Background(), adminSession(), perfumeInput())
	require.NoError(t, err)

	require.Equal(t, "oud-royale", p.Slug)
	// base price is the minimum active variant price, not a free-standing field
	require.True(t, d(4500).Equal(p.BasePrice))
	require.Len(t, p.Variants, 2)
	for _, v := range p.Variants {
		require.NotEmpty(t, v.SKU)
		require.Contains(t, v.SKU, "JUN-OUD")
	}
}

func TestCreateProductBasePriceOverride(t *testing.T) {
	svc, _ := newTestService(t)

	in := perfumeInput()
	override := d(5000)
	in.BasePrice = &override
	p, err := svc.CreateProduct(context.Background(), adminSession(), in)
	require.NoError(t, err)
	require.True(t, d(5000).Equal(p.BasePrice))
}

func TestPatchVariantRecomputesBasePrice(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(context.Background(), adminSession(), perfumeInput())
	require.NoError(t, err)

	newPrice := d(3900)
	_, err = svc.PatchVariant(context.Background(), adminSession(), p.Variants[0].ID, PatchVariantInput{Price: &newPrice})
	require.NoError(t, err)

	reloaded, err := svc.ProductBySlug(context.Background(), p.Slug)
	require.NoError(t, err)
	require.True(t, d(3900).Equal(reloaded.BasePrice))
}

func TestPatchVariantStock(t *testing.T) {
	svc, db := newTestService(t)

	p, err := svc.CreateProduct(context.Background(), adminSession(), perfumeInput())
	require.NoError(t, err)

	newStock := 25
	_, err = svc.PatchVariant(context.Background(), adminSession(), p.Variants[0].ID, PatchVariantInput{Stock: &newStock})
	require.NoError(t, err)

	var v models.ProductVariant
	require.NoError(t, db.First(&v, p.Variants[0].ID).Error)
	require.Equal(t, 25, v.Stock)

	negative := -1
	_, err = svc.PatchVariant(context.Background(), adminSession(), p.Variants[0].ID, PatchVariantInput{Stock: &negative})
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteProductCascadesVariantsOnly(t *testing.T) {
	svc, db := newTestService(t)

	p, err := svc.CreateProduct(context.Background(), adminSession(), perfumeInput())
	require.NoError(t, err)

	// a historical order item referencing the product stays behind
	item := models.OrderItem{
		OrderID: 1, ProductID: p.ID, ProductName: p.Name, ProductSlug: p.Slug,
		VariantID: p.Variants[0].ID, VariantSize: "50ml", VariantSKU: p.Variants[0].SKU,
		Quantity: 1, UnitPrice: d(4500), LineTotal: d(4500),
	}
	require.NoError(t, db.Create(&item).Error)

	require.NoError(t, svc.DeleteProduct(context.Background(), adminSession(), p.ID))

	var variantCount, itemCount int64
	require.NoError(t, db.Model(&models.ProductVariant{}).Where("product_id = ?", p.ID).Count(&variantCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	require.Zero(t, variantCount)
	require.EqualValues(t, 1, itemCount)

	err = svc.DeleteProduct(context.Background(), adminSession(), p.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProductBySlugHidesInactive(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(context.Background(), adminSession(), perfumeInput())
	require.NoError(t, err)

	inactive := false
	_, err = svc.PatchProduct(context.Background(), adminSession(), p.ID, PatchProductInput{IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.ProductBySlug(context.Background(), p.Slug)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListProductsSummaries(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateProduct(context.Background(), adminSession(), perfumeInput())
	require.NoError(t, err)

	soldOut := CreateProductInput{
		Name:  "Empty Shelf",
		Brand: "Junaid Jamshed",
		Variants: []VariantInput{
			{Size: "50ml", Price: d(1200), Stock: 0},
		},
	}
	_, err = svc.CreateProduct(context.Background(), adminSession(), soldOut)
	require.NoError(t, err)

	summaries, total, err := svc.ListProducts(context.Background(), 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, summaries, 2)

	byName := map[string]Summary{}
	for _, s := range summaries {
		byName[s.Name] = s
	}
	require.True(t, byName["Oud Royale"].InStock)
	require.True(t, d(4500).Equal(byName["Oud Royale"].StartingPrice))
	require.False(t, byName["Empty Shelf"].InStock)
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "oud-royale", Slugify("Oud Royale"))
	require.Equal(t, "eau-de-parfum-50ml", Slugify("Eau de Parfum (50ml)"))
	require.Equal(t, "a-b", Slugify("  a -- b  "))
}

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU("Junaid Jamshed", "Oud Royale", "50ml")
	require.Contains(t, sku, "JUN-OUD-50ML-")
	require.NotEqual(t, sku, GenerateSKU("Junaid Jamshed", "Oud Royale", "50ml"))
}
