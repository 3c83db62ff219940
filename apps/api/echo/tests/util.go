package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	. "github.com/trezcool/campus/apps/api/echo"
	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/catalog"
	"github.com/trezcool/campus/core/product"
	"github.com/trezcool/campus/core/student"
	appfs "github.com/trezcool/campus/fs"
	logsvc "github.com/trezcool/campus/services/logger"
	inmemdb "github.com/trezcool/campus/storage/database/inmem"
	sqlxrepos "github.com/trezcool/campus/storage/database/sqlx"
	"github.com/trezcool/campus/storage/static"
	"github.com/trezcool/campus/tests"
)

var stdRepo student.Repository

func testConfig(csrf bool) *core.Config {
	return &core.Config{
		Env:      "TEST",
		AppName:  "Campus",
		TestMode: true,
		Server:   core.ServerConfig{DisableReqLogs: true, DisableCSRF: !csrf},
		Catalog:  core.CatalogConfig{SessionTTL: time.Hour, CleanupInterval: time.Minute, MaxPrice: product.DefaultMaxPrice},
	}
}

// setup returns a server backed by a fresh SQLite database, the shop and the product catalog datasets.
// CSRF protection is disabled unless csrf is set.
func setup(t *testing.T, csrf ...bool) *Server {
	conf := testConfig(len(csrf) > 0 && csrf[0])

	// set up DB & repos
	db := testutil.PrepareDB(t)
	stdRepo = sqlxrepos.NewStudentRepository(db)
	shop, err := static.LoadShop(appfs.FS)
	if err != nil {
		t.Fatalf("LoadShop() failed: %v", err)
	}
	prodRepo := inmemdb.NewProductRepository(inmemdb.Open(), shop...)
	products, err := static.LoadProducts(appfs.FS)
	if err != nil {
		t.Fatalf("LoadProducts() failed: %v", err)
	}

	// set up services
	stdSvc := student.NewService(stdRepo)
	prodSvc := product.NewService(prodRepo)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)

	// set up server
	return NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logsvc.NewLogger(zap.NewNop(), conf),
		StudentSvc: stdSvc,
		ProductSvc: prodSvc,
		Catalogs: []catalog.Source{
			student.NewCatalogSource(stdSvc),
			product.NewCatalogSource(products, conf.Catalog.MaxPrice),
		},
		Validate:   validate,
		Translator: translator,
	})
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func newFormRequest(method, path string, form url.Values, cookies ...*http.Cookie) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req, httptest.NewRecorder()
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		assert.Empty(t, rec.Body.String())
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// visitorCookie returns the catalog visitor cookie set on rec.
func visitorCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "campus_visitor" {
			return c
		}
	}
	t.Fatalf("visitor cookie not set")
	return nil
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) catalog.View {
	var view catalog.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decodeView() failed: %v; body %s", err, rec.Body.String())
	}
	return view
}

func itemIDs(view catalog.View) []int {
	ids := make([]int, 0, len(view.Items))
	for _, item := range view.Items {
		ids = append(ids, item.ID)
	}
	return ids
}
