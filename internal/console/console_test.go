package console_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/linemk/tuuze-market/internal/console"
	"github.com/stretchr/testify/assert"
)

// fakeUploader — фиктивный хостинг изображений.
type fakeUploader struct {
	url      string
	err      error
	uploaded bool
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = true
	return f.url, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func validForm() *console.ProductForm {
	return &console.ProductForm{
		Name:      "basket",
		Category:  "decor",
		Quantity:  3,
		Price:     24.5,
		ImageName: "basket.png",
		ImageData: []byte{0x89, 0x50, 0x4e, 0x47},
	}
}

func TestProductForm_Validate(t *testing.T) {
	assert.NoError(t, validForm().Validate())

	form := validForm()
	form.Name = ""
	assert.ErrorIs(t, form.Validate(), console.ErrNameRequired)

	form = validForm()
	form.Price = 0
	assert.ErrorIs(t, form.Validate(), console.ErrPriceInvalid)

	form = validForm()
	form.Quantity = -1
	assert.ErrorIs(t, form.Validate(), console.ErrQuantityInvalid)

	form = validForm()
	form.ImageData = nil
	assert.ErrorIs(t, form.Validate(), console.ErrImageRequired)
}

func TestSession_LoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Login successful", "token": "test-token"})
	}))
	defer srv.Close()

	client := console.NewClient(srv.URL, nil)
	session := console.NewSession(testLogger(), client, &fakeUploader{})

	err := session.Login(context.Background(), "a@x.com", "p")
	assert.NoError(t, err)
	assert.True(t, session.LoggedIn())

	session.Logout()
	assert.False(t, session.LoggedIn(), "Logout must clear the stored token")
}

func TestSession_LoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	}))
	defer srv.Close()

	client := console.NewClient(srv.URL, nil)
	session := console.NewSession(testLogger(), client, &fakeUploader{})

	err := session.Login(context.Background(), "a@x.com", "wrong")
	assert.True(t, errors.Is(err, console.ErrUnauthorized))
	assert.False(t, session.LoggedIn())
}

func TestSession_CreateProduct_FullFlow(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Login successful", "token": "test-token"})
		case "/AddProduct":
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"message": "Product created successfully", "rowsAffected": 1})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	uploader := &fakeUploader{url: "https://assets.example.com/basket.png"}
	client := console.NewClient(srv.URL, nil)
	session := console.NewSession(testLogger(), client, uploader)
	session.SetMerchantID("m1")

	err := session.Login(context.Background(), "a@x.com", "p")
	assert.NoError(t, err)

	err = session.CreateProduct(context.Background(), validForm())
	assert.NoError(t, err)
	assert.True(t, uploader.uploaded, "Image must be uploaded before submit")
	// токен внедряется в конкретный запрос, а не в общие заголовки клиента
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "https://assets.example.com/basket.png", gotBody["imageUrl"], "Catalog entry references the uploaded asset URL")
	assert.Equal(t, "m1", gotBody["merchant_id"])
}

func TestSession_CreateProduct_NotLoggedIn(t *testing.T) {
	uploader := &fakeUploader{url: "https://assets.example.com/basket.png"}
	client := console.NewClient("http://localhost:0", nil)
	session := console.NewSession(testLogger(), client, uploader)

	err := session.CreateProduct(context.Background(), validForm())
	assert.ErrorIs(t, err, console.ErrNotLoggedIn)
	assert.False(t, uploader.uploaded, "Nothing is uploaded without a session")
}

func TestSession_CreateProduct_UploadFailure(t *testing.T) {
	submitted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/auth/login" {
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "test-token"})
			return
		}
		submitted = true
	}))
	defer srv.Close()

	uploader := &fakeUploader{err: errors.New("asset host down")}
	client := console.NewClient(srv.URL, nil)
	session := console.NewSession(testLogger(), client, uploader)

	err := session.Login(context.Background(), "a@x.com", "p")
	assert.NoError(t, err)

	err = session.CreateProduct(context.Background(), validForm())
	assert.Error(t, err, "Upload failure must surface to the caller")
	assert.False(t, submitted, "No catalog entry is submitted after a failed upload")
}

func TestSession_CreateProduct_SubmitFailureAbandonsImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/auth/login" {
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "test-token"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "An error occurred while creating the product."})
	}))
	defer srv.Close()

	uploader := &fakeUploader{url: "https://assets.example.com/basket.png"}
	client := console.NewClient(srv.URL, nil)
	session := console.NewSession(testLogger(), client, uploader)

	err := session.Login(context.Background(), "a@x.com", "p")
	assert.NoError(t, err)

	err = session.CreateProduct(context.Background(), validForm())
	assert.Error(t, err)
	// изображение уже загружено и остается на хостинге — компенсации нет
	assert.True(t, uploader.uploaded)
}

func TestSession_RegisterWallet_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/auth/login" {
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "test-token"})
			return
		}
		assert.Equal(t, "/saveWallet", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Wallet address is already registered"})
	}))
	defer srv.Close()

	client := console.NewClient(srv.URL, nil)
	session := console.NewSession(testLogger(), client, &fakeUploader{})
	session.SetMerchantID("m2")

	err := session.Login(context.Background(), "a@x.com", "p")
	assert.NoError(t, err)

	err = session.RegisterWallet(context.Background(), "0xABC")
	assert.ErrorIs(t, err, console.ErrConflict)
}

func TestSession_MyProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/auth/login" {
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "test-token"})
			return
		}
		assert.Equal(t, "/merchant/products", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"message": [{"id": "p1", "name": "basket", "price": 24.5, "quantity": 3}]}`))
	}))
	defer srv.Close()

	client := console.NewClient(srv.URL, nil)
	session := console.NewSession(testLogger(), client, &fakeUploader{})

	err := session.Login(context.Background(), "a@x.com", "p")
	assert.NoError(t, err)

	products, err := session.MyProducts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "basket", products[0].Name)
}
