package qrcode

import (
	"testing"

	"storefront/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
		{"Default size", 0, "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel, "https://shop.example.com")
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateOrderQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "https://shop.example.com")

	qrBytes, err := service.GenerateOrderQR(uuid.New())
	require.NoError(t, err)
	require.NotEmpty(t, qrBytes)

	// PNG magic number
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, qrBytes[:4])
}

func TestQRCodeService_GenerateOrderQR_DifferentSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Large QR", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, "M", "")

			qrBytes, err := service.GenerateOrderQR(uuid.New())
			require.NoError(t, err)
			assert.NotEmpty(t, qrBytes)
		})
	}
}

func TestQRCodeService_OrderLinkRoundTrip(t *testing.T) {
	svc := NewQRCodeService(256, "M", "https://shop.example.com/").(*qrcodeService)
	orderID := uuid.New()

	link := svc.orderLink(orderID)
	assert.Equal(t, "https://shop.example.com/orders/"+orderID.String(), link)

	parsed, err := svc.ParseOrderQR(link)
	require.NoError(t, err)
	assert.Equal(t, orderID, parsed)
}

func TestQRCodeService_ParseOrderQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "")
	orderID := uuid.New()

	tests := []struct {
		name    string
		data    string
		want    uuid.UUID
		wantErr string
	}{
		{name: "relative link", data: "/orders/" + orderID.String(), want: orderID},
		{name: "trailing slash", data: "https://shop.example.com/orders/" + orderID.String() + "/", want: orderID},
		{name: "wrong resource", data: "https://shop.example.com/products/" + orderID.String(), wantErr: "invalid QR code link"},
		{name: "not a uuid", data: "https://shop.example.com/orders/abc", wantErr: "failed to parse order ID"},
		{name: "unparseable", data: "://bad", wantErr: "failed to parse QR code link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ParseOrderQR(tt.data)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	assert.NotNil(t, NewFromConfig(&config.Config{}))

	svc := NewFromConfig(&config.Config{QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "H", BaseURL: "https://x"}}).(*qrcodeService)
	assert.Equal(t, 128, svc.size)
	assert.Equal(t, "https://x", svc.baseURL)
}
