package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/james-see/dx7syx/pkg/converter"
	"github.com/james-see/dx7syx/pkg/converter/devices"
	"github.com/james-see/dx7syx/pkg/dx7"
	"github.com/james-see/dx7syx/pkg/sysex"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(converter.New(devices.NewDX7(dx7.DefaultChannel())))
}

func upload(t *testing.T, url, name string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/health", "/api/v1/health"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, w.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/decode", nil))
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestInitVoice(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/voices/init", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var doc converter.Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	v, err := doc.Voice()
	if err != nil {
		t.Fatal(err)
	}
	if v != dx7.InitVoice() {
		t.Error("response is not INIT VOICE")
	}
}

func TestDecodeAndEncode(t *testing.T) {
	r := newTestRouter()
	syx := sysex.NewCartridgeMessage(dx7.DefaultChannel(), dx7.NewCartridge()).Bytes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, upload(t, "/api/v1/decode", "bank.syx", syx))
	if w.Code != http.StatusOK {
		t.Fatalf("decode status = %d: %s", w.Code, w.Body)
	}
	docJSON := w.Body.Bytes()

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/encode?format=syx", bytes.NewReader(docJSON))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("encode status = %d: %s", w.Code, w.Body)
	}
	if !bytes.Equal(w.Body.Bytes(), syx) {
		t.Error("decode then encode changed the dump")
	}
}

func TestDecodeErrors(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/decode", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("decode without file = %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, upload(t, "/api/v1/decode", "junk.syx", []byte{0xF0, 0x41, 0xF7}))
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("decode of foreign dump = %d, want 422", w.Code)
	}
}

func TestEncodeErrors(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/encode?format=wav", bytes.NewReader([]byte("{}"))))
	if w.Code != http.StatusBadRequest {
		t.Errorf("encode format=wav = %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/encode", bytes.NewReader([]byte(`{"kind":"patch","voices":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("encode of unknown kind = %d, want 422", w.Code)
	}
}

func TestExtract(t *testing.T) {
	r := newTestRouter()
	cart := dx7.NewCartridge()
	cart.Voices[2].Name = "THIRD"
	syx := sysex.NewCartridgeMessage(dx7.DefaultChannel(), cart).Bytes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, upload(t, "/api/v1/extract?slot=3", "bank.syx", syx))
	if w.Code != http.StatusOK {
		t.Fatalf("extract status = %d: %s", w.Code, w.Body)
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=bank-03.syx" {
		t.Errorf("Content-Disposition = %q", got)
	}
	msg, err := sysex.Parse(w.Body.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	v, err := msg.Voice()
	if err != nil {
		t.Fatal(err)
	}
	if v.Name != "THIRD" {
		t.Errorf("extracted voice = %q, want THIRD", v.Name)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, upload(t, "/api/v1/extract?slot=0", "bank.syx", syx))
	if w.Code != http.StatusBadRequest {
		t.Errorf("extract slot=0 = %d, want 400", w.Code)
	}
}
