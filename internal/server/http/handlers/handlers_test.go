package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tdnguyen/storefront/internal/adapter/assets"
	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/domain/model"
	"github.com/tdnguyen/storefront/internal/server/http/dto"
	"github.com/tdnguyen/storefront/internal/server/http/middleware"
	testhelpers "github.com/tdnguyen/storefront/internal/test"
	"github.com/tdnguyen/storefront/internal/test/facades"
	"github.com/tdnguyen/storefront/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// performRequest registers the handler under route (which may hold :id
// params) and issues a request against the concrete path.
func performRequest(t *testing.T, method, route, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	email := testhelpers.RandomASCIIString(7, 14) + "@example.com"
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegisterRequest{Email: email, Password: password})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(facades.AuthFacadeStub{}).Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Header().Get("Set-Cookie"), "storefront_token") {
		t.Fatalf("expected auth cookie to be set, got %q", resp.Header().Get("Set-Cookie"))
	}

	var user dto.UserResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &user); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if user.Email != email {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandlerRegisterErrors(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"duplicate":  {err: domainErrors.ErrAlreadyExists, want: http.StatusConflict},
		"validation": {err: domainErrors.ErrInvalidCredentials, want: http.StatusBadRequest},
		"internal":   {err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			stub := facades.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
				return nil, "", tc.err
			}}
			body, _ := json.Marshal(dto.RegisterRequest{Email: "user@example.com", Password: "pass"})
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(stub).Register, nil, body, jsonHeaders)
			if resp.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, resp.Code)
			}
		})
	}
}

func TestAuthHandlerRegisterBadPayload(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(facades.AuthFacadeStub{}).Register, nil, []byte("{"), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	stub := facades.AuthFacadeStub{AuthenticateFn: func(ctx context.Context, email, password string) (*model.User, string, error) {
		if email != "user@example.com" || password != "pass" {
			t.Fatalf("unexpected credentials passed to facade: %q %q", email, password)
		}
		return &model.User{ID: 7, Email: email, Role: model.RoleCustomer}, "issued", nil
	}}
	body, _ := json.Marshal(dto.LoginRequest{Email: "user@example.com", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(stub).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Header().Get("Set-Cookie"), "issued") {
		t.Fatalf("expected issued token in cookie, got %q", resp.Header().Get("Set-Cookie"))
	}
}

func TestAuthHandlerLoginRejected(t *testing.T) {
	stub := facades.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}}
	body, _ := json.Marshal(dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(stub).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthHandlerMe(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/me", "/me", NewAuthHandler(facades.AuthFacadeStub{}).Me, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	stub := facades.AuthFacadeStub{UserFn: func(context.Context, int64) (*model.User, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodGet, "/me", "/me", NewAuthHandler(stub).Me, asUser(1), nil, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for vanished account, got %d", resp.Code)
	}
}

func TestCatalogHandlerList(t *testing.T) {
	sale := int64(80)
	stub := facades.CatalogFacadeStub{ProductsFn: func(ctx context.Context, categoryID *int64, includeHidden bool) ([]model.Product, error) {
		if includeHidden {
			t.Fatalf("public listing must not include hidden products")
		}
		return []model.Product{{ID: 1, Name: "Shirt", Price: 100, SalePrice: &sale, Active: true}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/products", "/products", NewCatalogHandler(stub).List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var products []dto.ProductResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &products); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if len(products) != 1 || products[0].Price != 80 || products[0].ListPrice != 100 {
		t.Fatalf("expected resolved sale price in payload, got %+v", products)
	}
}

func TestCatalogHandlerListCategoryFilter(t *testing.T) {
	var gotCategory *int64
	stub := facades.CatalogFacadeStub{ProductsFn: func(ctx context.Context, categoryID *int64, includeHidden bool) ([]model.Product, error) {
		gotCategory = categoryID
		return nil, nil
	}}
	resp := performRequest(t, http.MethodGet, "/products", "/products?category=3", NewCatalogHandler(stub).List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotCategory == nil || *gotCategory != 3 {
		t.Fatalf("expected category filter 3, got %v", gotCategory)
	}

	resp = performRequest(t, http.MethodGet, "/products", "/products?category=abc", NewCatalogHandler(stub).List, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad category, got %d", resp.Code)
	}
}

func TestCatalogHandlerDetail(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/products/:id", "/products/5", NewCatalogHandler(facades.CatalogFacadeStub{}).Detail, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var detail dto.ProductDetailResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &detail); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if detail.Product.ID != 5 {
		t.Fatalf("expected product 5 in payload, got %+v", detail.Product)
	}
}

func TestCatalogHandlerDetailErrors(t *testing.T) {
	stub := facades.CatalogFacadeStub{ProductDetailFn: func(context.Context, int64) (*usecase.ProductDetail, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/products/:id", "/products/5", NewCatalogHandler(stub).Detail, nil, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/products/:id", "/products/abc", NewCatalogHandler(stub).Detail, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad id, got %d", resp.Code)
	}
}

func TestCatalogHandlerAddReview(t *testing.T) {
	stub := facades.CatalogFacadeStub{AddReviewFn: func(ctx context.Context, userID, productID int64, rating int, comment string) (*model.Review, error) {
		if userID != 9 || productID != 5 || rating != 4 {
			t.Fatalf("unexpected review args: user=%d product=%d rating=%d", userID, productID, rating)
		}
		return &model.Review{ID: 1, ProductID: productID, UserID: userID, Rating: rating, Comment: comment}, nil
	}}
	body, _ := json.Marshal(dto.ReviewRequest{Rating: 4, Comment: "nice"})
	resp := performRequest(t, http.MethodPost, "/products/:id/reviews", "/products/5/reviews", NewCatalogHandler(stub).AddReview, asUser(9), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestCatalogHandlerAddReviewInvalidRating(t *testing.T) {
	stub := facades.CatalogFacadeStub{AddReviewFn: func(context.Context, int64, int64, int, string) (*model.Review, error) {
		return nil, domainErrors.ErrInvalidReview
	}}
	body, _ := json.Marshal(dto.ReviewRequest{Rating: 9})
	resp := performRequest(t, http.MethodPost, "/products/:id/reviews", "/products/5/reviews", NewCatalogHandler(stub).AddReview, asUser(9), body, jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
}

func TestCartHandlerList(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/cart", "/cart", NewCartHandler(facades.CartFacadeStub{}).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var cart dto.CartResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &cart); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if len(cart.Items) != 1 || cart.Subtotal != 200 {
		t.Fatalf("expected subtotal 200 across one line, got %+v", cart)
	}
}

func TestCartHandlerAdd(t *testing.T) {
	stub := facades.CartFacadeStub{AddFn: func(ctx context.Context, userID, productID int64, quantity int, color, size string) (*model.CartItem, error) {
		if userID != 1 || productID != 5 || quantity != 2 || color != "red" || size != "M" {
			t.Fatalf("unexpected add args: %d %d %d %q %q", userID, productID, quantity, color, size)
		}
		return &model.CartItem{ID: 1}, nil
	}}
	body, _ := json.Marshal(dto.CartAddRequest{ProductID: 5, Quantity: 2, Color: "red", Size: "M"})
	resp := performRequest(t, http.MethodPost, "/cart", "/cart", NewCartHandler(stub).Add, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestCartHandlerAddErrors(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"invalid quantity": {err: domainErrors.ErrInvalidQuantity, want: http.StatusUnprocessableEntity},
		"unknown product":  {err: domainErrors.ErrNotFound, want: http.StatusNotFound},
		"unavailable":      {err: domainErrors.ErrProductUnavailable, want: http.StatusNotFound},
		"internal":         {err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			stub := facades.CartFacadeStub{AddFn: func(context.Context, int64, int64, int, string, string) (*model.CartItem, error) {
				return nil, tc.err
			}}
			body, _ := json.Marshal(dto.CartAddRequest{ProductID: 5, Quantity: 1})
			resp := performRequest(t, http.MethodPost, "/cart", "/cart", NewCartHandler(stub).Add, asUser(1), body, jsonHeaders)
			if resp.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, resp.Code)
			}
		})
	}
}

func TestCartHandlerSetQuantity(t *testing.T) {
	var gotItem int64
	var gotQuantity int
	stub := facades.CartFacadeStub{SetQuantityFn: func(ctx context.Context, userID, itemID int64, quantity int) error {
		gotItem, gotQuantity = itemID, quantity
		return nil
	}}
	body, _ := json.Marshal(dto.CartQuantityRequest{Quantity: 7})
	resp := performRequest(t, http.MethodPatch, "/cart/items/:id", "/cart/items/3", NewCartHandler(stub).SetQuantity, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotItem != 3 || gotQuantity != 7 {
		t.Fatalf("expected item 3 quantity 7, got item %d quantity %d", gotItem, gotQuantity)
	}
}

func TestCartHandlerSetQuantityUnknownItem(t *testing.T) {
	stub := facades.CartFacadeStub{SetQuantityFn: func(context.Context, int64, int64, int) error {
		return domainErrors.ErrNotFound
	}}
	body, _ := json.Marshal(dto.CartQuantityRequest{Quantity: 7})
	resp := performRequest(t, http.MethodPatch, "/cart/items/:id", "/cart/items/3", NewCartHandler(stub).SetQuantity, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCartHandlerRemove(t *testing.T) {
	var gotItem int64
	stub := facades.CartFacadeStub{RemoveFn: func(ctx context.Context, userID, itemID int64) error {
		gotItem = itemID
		return nil
	}}
	resp := performRequest(t, http.MethodDelete, "/cart/items/:id", "/cart/items/3", NewCartHandler(stub).Remove, asUser(1), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if gotItem != 3 {
		t.Fatalf("expected removal of item 3, got %d", gotItem)
	}
}

func TestPromotionHandlerApply(t *testing.T) {
	stub := facades.PromotionFacadeStub{ApplyFn: func(ctx context.Context, userID int64, code string) (usecase.Evaluation, error) {
		if code != "SAVE10" {
			t.Fatalf("unexpected code passed to facade: %q", code)
		}
		return usecase.Evaluation{Valid: true, Discount: 25}, nil
	}}
	body, _ := json.Marshal(dto.ApplyPromotionRequest{Code: "SAVE10"})
	resp := performRequest(t, http.MethodPost, "/cart/promotion", "/cart/promotion", NewPromotionHandler(stub).Apply, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var eval dto.PromotionEvaluationResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &eval); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if !eval.Valid || eval.Discount != 25 {
		t.Fatalf("expected valid evaluation with discount 25, got %+v", eval)
	}
}

func TestPromotionHandlerApplyRejected(t *testing.T) {
	stub := facades.PromotionFacadeStub{ApplyFn: func(context.Context, int64, string) (usecase.Evaluation, error) {
		return usecase.Evaluation{Reason: usecase.ReasonOutOfWindow}, domainErrors.ErrInvalidPromotion
	}}
	body, _ := json.Marshal(dto.ApplyPromotionRequest{Code: "EXPIRED"})
	resp := performRequest(t, http.MethodPost, "/cart/promotion", "/cart/promotion", NewPromotionHandler(stub).Apply, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}

	var eval dto.PromotionEvaluationResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &eval); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if eval.Valid || eval.Reason != string(usecase.ReasonOutOfWindow) {
		t.Fatalf("expected rejection reason in payload, got %+v", eval)
	}
}

func TestPromotionHandlerApplyTwice(t *testing.T) {
	stub := facades.PromotionFacadeStub{ApplyFn: func(context.Context, int64, string) (usecase.Evaluation, error) {
		return usecase.Evaluation{}, domainErrors.ErrPromotionApplied
	}}
	body, _ := json.Marshal(dto.ApplyPromotionRequest{Code: "SAVE10"})
	resp := performRequest(t, http.MethodPost, "/cart/promotion", "/cart/promotion", NewPromotionHandler(stub).Apply, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestPromotionHandlerApplied(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/cart/promotion", "/cart/promotion", NewPromotionHandler(facades.PromotionFacadeStub{}).Applied, asUser(1), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 without an applied code, got %d", resp.Code)
	}

	stub := facades.PromotionFacadeStub{AppliedFn: func(context.Context, int64) (string, usecase.Evaluation, error) {
		return "SAVE10", usecase.Evaluation{Valid: true, Discount: 25}, nil
	}}
	resp = performRequest(t, http.MethodGet, "/cart/promotion", "/cart/promotion", NewPromotionHandler(stub).Applied, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var eval dto.PromotionEvaluationResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &eval); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if eval.Code != "SAVE10" || !eval.Valid {
		t.Fatalf("expected applied SAVE10 evaluation, got %+v", eval)
	}
}

func TestPromotionHandlerRemove(t *testing.T) {
	resp := performRequest(t, http.MethodDelete, "/cart/promotion", "/cart/promotion", NewPromotionHandler(facades.PromotionFacadeStub{}).Remove, asUser(1), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestOrderHandlerPlace(t *testing.T) {
	stub := facades.OrderFacadeStub{PlaceFn: func(ctx context.Context, userID int64, shipping model.ShippingInfo) (*model.Order, error) {
		if shipping.Method != model.ShippingExpress || shipping.ReceiverName != "Alice" {
			t.Fatalf("unexpected shipping passed to facade: %+v", shipping)
		}
		return &model.Order{ID: 1, Number: "order-1", UserID: userID, Status: model.OrderStatusPending, ShippingFee: 15000, Subtotal: 250, Total: 15250}, nil
	}}
	body, _ := json.Marshal(dto.PlaceOrderRequest{ReceiverName: "Alice", Phone: "555-0100", Address: "1 Main St", Method: "express"})
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(stub, 3).Place, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var order dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if order.Status != string(model.OrderStatusPending) || order.Total != 15250 {
		t.Fatalf("unexpected order payload: %+v", order)
	}
}

func TestOrderHandlerPlaceErrors(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"invalid shipping":  {err: domainErrors.ErrInvalidShipping, want: http.StatusUnprocessableEntity},
		"empty cart":        {err: domainErrors.ErrEmptyCart, want: http.StatusConflict},
		"unavailable":       {err: domainErrors.ErrProductUnavailable, want: http.StatusConflict},
		"stale promotion":   {err: domainErrors.ErrInvalidPromotion, want: http.StatusUnprocessableEntity},
		"storage breakdown": {err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			stub := facades.OrderFacadeStub{PlaceFn: func(context.Context, int64, model.ShippingInfo) (*model.Order, error) {
				return nil, tc.err
			}}
			body, _ := json.Marshal(dto.PlaceOrderRequest{ReceiverName: "Alice", Phone: "555-0100", Address: "1 Main St", Method: "standard"})
			resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(stub, 3).Place, asUser(1), body, jsonHeaders)
			if resp.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, resp.Code)
			}
		})
	}
}

func TestOrderHandlerList(t *testing.T) {
	var gotLimit int
	stub := facades.OrderFacadeStub{OrdersFn: func(ctx context.Context, userID int64, limit int) ([]model.Order, error) {
		gotLimit = limit
		return []model.Order{{ID: 1, Number: "order-1", UserID: userID}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(stub, 3).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotLimit != 3 {
		t.Fatalf("expected configured history limit 3, got %d", gotLimit)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders?limit=10", NewOrderHandler(stub, 3).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotLimit != 10 {
		t.Fatalf("expected query limit 10 to win, got %d", gotLimit)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders?limit=abc", NewOrderHandler(stub, 3).List, asUser(1), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad limit, got %d", resp.Code)
	}
}

func TestOrderHandlerListEmpty(t *testing.T) {
	stub := facades.OrderFacadeStub{OrdersFn: func(context.Context, int64, int) ([]model.Order, error) {
		return nil, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(stub, 3).List, asUser(1), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for empty history, got %d", resp.Code)
	}
}

func TestAdminHandlerListProductsIncludesHidden(t *testing.T) {
	stub := facades.AdminFacadeStub{}
	catalog := facades.CatalogFacadeStub{ProductsFn: func(ctx context.Context, categoryID *int64, includeHidden bool) ([]model.Product, error) {
		if !includeHidden {
			t.Fatalf("admin listing must include hidden products")
		}
		return []model.Product{{ID: 1, Name: "Shirt", Price: 100}}, nil
	}}
	facade := facades.StorefrontFacadeStub{AdminFacadeStub: stub, CatalogFacadeStub: catalog}
	resp := performRequest(t, http.MethodGet, "/admin/products", "/admin/products", NewAdminHandler(facade).ListProducts, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAdminHandlerCreateProduct(t *testing.T) {
	body, _ := json.Marshal(dto.ProductRequest{Name: "Shirt", Price: 100, Stock: 5, CategoryID: 1, Active: true})
	resp := performRequest(t, http.MethodPost, "/admin/products", "/admin/products", NewAdminHandler(facades.StorefrontFacadeStub{}).CreateProduct, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestAdminHandlerCreateProductInvalid(t *testing.T) {
	facade := facades.StorefrontFacadeStub{AdminFacadeStub: facades.AdminFacadeStub{CreateProductFn: func(context.Context, *model.Product) (*model.Product, error) {
		return nil, domainErrors.ErrInvalidProduct
	}}}
	body, _ := json.Marshal(dto.ProductRequest{Name: "", Price: -1})
	resp := performRequest(t, http.MethodPost, "/admin/products", "/admin/products", NewAdminHandler(facade).CreateProduct, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
}

func TestAdminHandlerUpdateProduct(t *testing.T) {
	var gotID int64
	facade := facades.StorefrontFacadeStub{AdminFacadeStub: facades.AdminFacadeStub{UpdateProductFn: func(ctx context.Context, p *model.Product) error {
		gotID = p.ID
		return nil
	}}}
	body, _ := json.Marshal(dto.ProductRequest{Name: "Shirt", Price: 100, Active: true})
	resp := performRequest(t, http.MethodPut, "/admin/products/:id", "/admin/products/4", NewAdminHandler(facade).UpdateProduct, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotID != 4 {
		t.Fatalf("expected path id 4 on product, got %d", gotID)
	}
}

func TestAdminHandlerDeleteProduct(t *testing.T) {
	resp := performRequest(t, http.MethodDelete, "/admin/products/:id", "/admin/products/4", NewAdminHandler(facades.StorefrontFacadeStub{}).DeleteProduct, asUser(1), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestAdminHandlerInventoryLogs(t *testing.T) {
	var gotLimit int
	facade := facades.StorefrontFacadeStub{AdminFacadeStub: facades.AdminFacadeStub{InventoryLogsFn: func(ctx context.Context, limit int) ([]model.InventoryLog, error) {
		gotLimit = limit
		return nil, nil
	}}}
	resp := performRequest(t, http.MethodGet, "/admin/inventory-logs", "/admin/inventory-logs?limit=5", NewAdminHandler(facade).InventoryLogs, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotLimit != 5 {
		t.Fatalf("expected limit 5, got %d", gotLimit)
	}

	resp = performRequest(t, http.MethodGet, "/admin/inventory-logs", "/admin/inventory-logs", NewAdminHandler(facade).InventoryLogs, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotLimit != defaultInventoryLogLimit {
		t.Fatalf("expected default limit %d, got %d", defaultInventoryLogLimit, gotLimit)
	}
}

func TestAdminHandlerCreatePromotionConflict(t *testing.T) {
	facade := facades.StorefrontFacadeStub{AdminFacadeStub: facades.AdminFacadeStub{CreatePromotionFn: func(context.Context, *model.Promotion) (*model.Promotion, error) {
		return nil, domainErrors.ErrAlreadyExists
	}}}
	body, _ := json.Marshal(dto.PromotionRequest{Code: "SAVE10", Type: "percentage", Value: 10, MaxUsage: 1})
	resp := performRequest(t, http.MethodPost, "/admin/promotions", "/admin/promotions", NewAdminHandler(facade).CreatePromotion, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestAdminHandlerUpdateOrderStatus(t *testing.T) {
	var gotStatus model.OrderStatus
	facade := facades.StorefrontFacadeStub{AdminFacadeStub: facades.AdminFacadeStub{UpdateOrderStatusFn: func(ctx context.Context, orderID int64, status model.OrderStatus) error {
		gotStatus = status
		return nil
	}}}
	body, _ := json.Marshal(dto.OrderStatusRequest{Status: "processing"})
	resp := performRequest(t, http.MethodPatch, "/admin/orders/:id", "/admin/orders/2", NewAdminHandler(facade).UpdateOrderStatus, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotStatus != model.OrderStatusProcessing {
		t.Fatalf("expected processing status, got %q", gotStatus)
	}
}

func TestAdminHandlerUpdateOrderStatusRejected(t *testing.T) {
	facade := facades.StorefrontFacadeStub{AdminFacadeStub: facades.AdminFacadeStub{UpdateOrderStatusFn: func(context.Context, int64, model.OrderStatus) error {
		return domainErrors.ErrInvalidTransition
	}}}
	body, _ := json.Marshal(dto.OrderStatusRequest{Status: "pending"})
	resp := performRequest(t, http.MethodPatch, "/admin/orders/:id", "/admin/orders/2", NewAdminHandler(facade).UpdateOrderStatus, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
}

func multipartUpload(t *testing.T, filename, content string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return buf.Bytes(), writer.FormDataContentType()
}

func TestAdminHandlerUploadImage(t *testing.T) {
	facade := facades.StorefrontFacadeStub{AdminFacadeStub: facades.AdminFacadeStub{UploadImageFn: func(ctx context.Context, filename string, content io.Reader) (string, error) {
		data, _ := io.ReadAll(content)
		if filename != "photo.png" || string(data) != "img-bytes" {
			t.Fatalf("unexpected upload: %q %q", filename, data)
		}
		return "https://cdn.example.com/photo.png", nil
	}}}
	body, contentType := multipartUpload(t, "photo.png", "img-bytes")
	resp := performRequest(t, http.MethodPost, "/admin/uploads", "/admin/uploads", NewAdminHandler(facade).UploadImage, asUser(1), body, map[string]string{"Content-Type": contentType})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var upload dto.UploadResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &upload); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if upload.URL != "https://cdn.example.com/photo.png" {
		t.Fatalf("unexpected hosted url: %q", upload.URL)
	}
}

func TestAdminHandlerUploadImageErrors(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/admin/uploads", "/admin/uploads", NewAdminHandler(facades.StorefrontFacadeStub{}).UploadImage, asUser(1), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without a file, got %d", resp.Code)
	}

	facade := facades.StorefrontFacadeStub{AdminFacadeStub: facades.AdminFacadeStub{UploadImageFn: func(context.Context, string, io.Reader) (string, error) {
		return "", assets.ErrUnsupportedImage
	}}}
	body, contentType := multipartUpload(t, "notes.txt", "plain text")
	resp = performRequest(t, http.MethodPost, "/admin/uploads", "/admin/uploads", NewAdminHandler(facade).UploadImage, asUser(1), body, map[string]string{"Content-Type": contentType})
	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected status 415, got %d", resp.Code)
	}
}
