package impl

import (
	"context"
	"log/slog"
	"strconv"

	deliverycontext "manero/internal/delivery/context"
	"manero/internal/domain/entity"
	"manero/internal/domain/service"
	"manero/internal/errors"
	"manero/internal/usecase"

	"go.uber.org/fx"
)

const (
	labelKeyPrefix   = "labels/"
	labelContentType = "image/png"
)

type labelService struct {
	qrCodes service.QRCodeService
	images  service.ImageStore
	logger  *slog.Logger
}

// LabelServiceParams holds dependencies for labelService, injected by Fx.
type LabelServiceParams struct {
	fx.In

	QRCodes service.QRCodeService
	Images  service.ImageStore
	Logger  *slog.Logger
}

// NewLabelService is the constructor for labelService.
func NewLabelService(params LabelServiceParams) usecase.LabelUsecase {
	return &labelService{
		qrCodes: params.QRCodes,
		images:  params.Images,
		logger:  params.Logger,
	}
}

func (srv *labelService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// HandleEvent renders the label on product.created and product.updated and
// removes it on product.deleted. Other events are ignored. Storage failures
// are retryable; malformed events are not.
func (srv *labelService) HandleEvent(ctx context.Context, event *entity.Event) error {
	if event == nil {
		return errors.New("event is nil")
	}

	switch event.Type {
	case entity.EventProductCreated, entity.EventProductUpdated:
		return srv.render(ctx, event)
	case entity.EventProductDeleted:
		return srv.remove(ctx, event)
	default:
		srv.log(ctx).DebugContext(ctx, "Ignoring event", slog.String("type", string(event.Type)))

		return nil
	}
}

func (srv *labelService) render(ctx context.Context, event *entity.Event) error {
	articleNumber, err := parseArticleNumber(event.SubjectID)
	if err != nil {
		return err
	}

	png, err := srv.qrCodes.GenerateProductQR(articleNumber)
	if err != nil {
		return errors.Wrapf(err, "failed to render label for product %d", articleNumber)
	}

	url, err := srv.images.Put(ctx, labelKey(articleNumber), labelContentType, png)
	if err != nil {
		return usecase.NewRetryableError(errors.Wrapf(err, "failed to store label for product %d", articleNumber))
	}

	srv.log(ctx).InfoContext(ctx, "Product label stored",
		slog.Int64("article_number", articleNumber),
		slog.String("url", url),
	)

	return nil
}

func (srv *labelService) remove(ctx context.Context, event *entity.Event) error {
	articleNumber, err := parseArticleNumber(event.SubjectID)
	if err != nil {
		return err
	}

	if err := srv.images.Delete(ctx, labelKey(articleNumber)); err != nil {
		return usecase.NewRetryableError(errors.Wrapf(err, "failed to delete label for product %d", articleNumber))
	}

	srv.log(ctx).InfoContext(ctx, "Product label removed", slog.Int64("article_number", articleNumber))

	return nil
}

func parseArticleNumber(subjectID string) (int64, error) {
	articleNumber, err := strconv.ParseInt(subjectID, 10, 64)
	if err != nil || articleNumber <= 0 {
		return 0, errors.Errorf("invalid product subject id %q", subjectID)
	}

	return articleNumber, nil
}

func labelKey(articleNumber int64) string {
	return labelKeyPrefix + formatArticleNumber(articleNumber) + ".png"
}
