package fetcher_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/visit-auburn/imgprep/pkg/domain/model"
	"github.com/visit-auburn/imgprep/pkg/infra/fetcher"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	gt.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	gt.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func serveBytes(contentType string, status int, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}
}

func TestClient_Fetch_JPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.RGBA{R: 0x20, G: 0x80, B: 0xc0, A: 0xff})
		}
	}
	body := encodeJPEG(t, src)

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		serveBytes("image/jpeg", http.StatusOK, body)(w, r)
	}))
	defer server.Close()

	client := fetcher.New(fetcher.WithUserAgent("imgprep-test"))
	bitmap, err := client.Fetch(context.Background(), server.URL+"/photo.jpg")
	gt.NoError(t, err)

	gt.Value(t, bitmap.Format).Equal("jpeg")
	gt.Number(t, bitmap.SourceBytes).Equal(int64(len(body)))
	gt.Number(t, bitmap.Bounds().Dx()).Equal(8)
	gt.Number(t, bitmap.Bounds().Dy()).Equal(6)
	gt.Value(t, gotUA).Equal("imgprep-test")
}

func TestClient_Fetch_DropsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0x00})
	src.SetNRGBA(1, 0, color.NRGBA{R: 0x00, G: 0xff, B: 0x00, A: 0x80})
	body := encodePNG(t, src)

	server := httptest.NewServer(serveBytes("image/png", http.StatusOK, body))
	defer server.Close()

	bitmap, err := fetcher.New().Fetch(context.Background(), server.URL)
	gt.NoError(t, err)
	gt.Value(t, bitmap.Format).Equal("png")

	for x := 0; x < 2; x++ {
		c := bitmap.Image.NRGBAAt(x, 0)
		gt.Value(t, c.A).Equal(uint8(0xff))
	}
	gt.Value(t, bitmap.Image.NRGBAAt(1, 0).G).Equal(uint8(0xff))
}

func TestClient_Fetch_Errors(t *testing.T) {
	pngBody := encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 1, 1)))

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantMsg string
	}{
		{
			name:    "not found",
			handler: serveBytes("text/html", http.StatusNotFound, []byte("<html>missing</html>")),
			wantMsg: "unexpected status code: 404",
		},
		{
			name:    "server error",
			handler: serveBytes("image/png", http.StatusInternalServerError, pngBody),
			wantMsg: "unexpected status code: 500",
		},
		{
			name:    "html payload with 200",
			handler: serveBytes("text/html", http.StatusOK, []byte("<!doctype html><html><body>oops</body></html>")),
			wantMsg: "failed to decode image",
		},
		{
			name:    "empty body",
			handler: serveBytes("image/jpeg", http.StatusOK, nil),
			wantMsg: "failed to decode image",
		},
		{
			name:    "truncated png",
			handler: serveBytes("image/png", http.StatusOK, pngBody[:len(pngBody)/2]),
			wantMsg: "failed to decode image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			url := server.URL + "/image"
			bitmap, err := fetcher.New().Fetch(context.Background(), url)
			gt.Error(t, err)
			gt.Value(t, bitmap).Nil()
			gt.String(t, err.Error()).Contains(tt.wantMsg)
			gt.Value(t, model.ErrorKind(err)).Equal("fetch")

			gotURL, ok := model.ErrorValue(err, "url")
			gt.True(t, ok)
			gt.Value(t, gotURL).Equal(any(url))
		})
	}
}

func TestClient_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := fetcher.New(fetcher.WithTimeout(50 * time.Millisecond))

	start := time.Now()
	_, err := client.Fetch(context.Background(), server.URL)
	gt.Error(t, err)
	gt.Value(t, model.ErrorKind(err)).Equal("fetch")
	gt.String(t, err.Error()).Contains("failed to download image")
	gt.True(t, time.Since(start) < 5*time.Second)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestClient_Fetch_WithHTTPClient(t *testing.T) {
	body := encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 3, 2)))

	var gotURL, gotAccept string
	hc := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			gotURL = r.URL.String()
			gotAccept = r.Header.Get("Accept")
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"image/png"}},
				Body:       io.NopCloser(bytes.NewReader(body)),
				Request:    r,
			}, nil
		}),
	}

	bitmap, err := fetcher.New(fetcher.WithHTTPClient(hc)).
		Fetch(context.Background(), "https://images.example.com/lake.png")
	gt.NoError(t, err)

	gt.Value(t, gotURL).Equal("https://images.example.com/lake.png")
	gt.Value(t, gotAccept).Equal("image/*")
	gt.Value(t, bitmap.Format).Equal("png")
	gt.Number(t, bitmap.Bounds().Dx()).Equal(3)
}

func TestClient_Fetch_Unreachable(t *testing.T) {
	server := httptest.NewServer(serveBytes("image/png", http.StatusOK, nil))
	url := server.URL
	server.Close()

	_, err := fetcher.New().Fetch(context.Background(), url)
	gt.Error(t, err)
	gt.Value(t, model.ErrorKind(err)).Equal("fetch")
}

func TestClient_Fetch_InvalidURL(t *testing.T) {
	_, err := fetcher.New().Fetch(context.Background(), "://not a url")
	gt.Error(t, err)
	gt.Value(t, model.ErrorKind(err)).Equal("fetch")
}

func TestClient_Check(t *testing.T) {
	statuses := fetcher.New().Check(context.Background())
	gt.A(t, statuses).Length(3)

	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.Name)
		gt.True(t, s.Available)
	}
	gt.Value(t, names).Equal([]string{"decode/jpeg", "decode/png", "decode/webp"})
}
