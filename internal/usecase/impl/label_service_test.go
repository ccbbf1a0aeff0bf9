package impl

import (
	"context"
	"testing"

	"manero/internal/domain/entity"
	mockService "manero/internal/mocks/service"
	"manero/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestLabelService(t *testing.T) (usecase.LabelUsecase, *mockService.MockQRCodeService, *mockService.MockImageStore) {
	qrCodes := mockService.NewMockQRCodeService(t)
	images := mockService.NewMockImageStore(t)

	return NewLabelService(LabelServiceParams{QRCodes: qrCodes, Images: images, Logger: discardLogger()}), qrCodes, images
}

func TestLabelService_HandleEvent_RendersLabel(t *testing.T) {
	for _, eventType := range []entity.EventType{entity.EventProductCreated, entity.EventProductUpdated} {
		t.Run(string(eventType), func(t *testing.T) {
			srv, qrCodes, images := createTestLabelService(t)
			qrCodes.On("GenerateProductQR", int64(42)).Return(pngHeader, nil)
			images.On("Put", mock.Anything, "labels/42.png", "image/png", pngHeader).
				Return("http://localhost:8080/images/labels/42.png", nil)

			err := srv.HandleEvent(context.Background(), entity.NewEvent(eventType, "42", nil))

			require.NoError(t, err)
		})
	}
}

func TestLabelService_HandleEvent_RemovesLabel(t *testing.T) {
	srv, _, images := createTestLabelService(t)
	images.On("Delete", mock.Anything, "labels/42.png").Return(nil)

	require.NoError(t, srv.HandleEvent(context.Background(), entity.NewEvent(entity.EventProductDeleted, "42", nil)))
}

func TestLabelService_HandleEvent_IgnoresOtherEvents(t *testing.T) {
	srv, _, _ := createTestLabelService(t)

	assert.NoError(t, srv.HandleEvent(context.Background(), entity.NewEvent(entity.EventCategoryCreated, "3", nil)))
	assert.NoError(t, srv.HandleEvent(context.Background(), entity.NewEvent(entity.EventUserRegistered, "c0ffee", nil)))
}

func TestLabelService_HandleEvent_Failures(t *testing.T) {
	t.Run("malformed subject is not retried", func(t *testing.T) {
		srv, _, _ := createTestLabelService(t)

		err := srv.HandleEvent(context.Background(), entity.NewEvent(entity.EventProductCreated, "abc", nil))

		require.Error(t, err)
		assert.False(t, usecase.IsRetryable(err))
	})

	t.Run("storage failure is retried", func(t *testing.T) {
		srv, qrCodes, images := createTestLabelService(t)
		qrCodes.On("GenerateProductQR", int64(7)).Return(pngHeader, nil)
		images.On("Put", mock.Anything, "labels/7.png", "image/png", pngHeader).Return("", assert.AnError)

		err := srv.HandleEvent(context.Background(), entity.NewEvent(entity.EventProductUpdated, "7", nil))

		require.Error(t, err)
		assert.True(t, usecase.IsRetryable(err))
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("delete failure is retried", func(t *testing.T) {
		srv, _, images := createTestLabelService(t)
		images.On("Delete", mock.Anything, "labels/7.png").Return(assert.AnError)

		err := srv.HandleEvent(context.Background(), entity.NewEvent(entity.EventProductDeleted, "7", nil))

		assert.True(t, usecase.IsRetryable(err))
	})

	t.Run("nil event", func(t *testing.T) {
		srv, _, _ := createTestLabelService(t)

		assert.Error(t, srv.HandleEvent(context.Background(), nil))
	})
}
