package validations

import (
	"context"

	domainApproval "github.com/Saran-Akshintala/autocontent-pro-sub000/approval/domain"
	pkgError "github.com/Saran-Akshintala/autocontent-pro-sub000/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateNotifyApproval(ctx context.Context, request domainApproval.NotifyApprovalRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.PostID, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateBulkNotify(ctx context.Context, request domainApproval.BulkNotifyRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.PostIDs, validation.Required, validation.Length(1, 0)),
		validation.Field(&request.Recipients, validation.Required, validation.Length(1, 0)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateInboundMessage(ctx context.Context, request domainApproval.InboundMessageRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Sender, validation.Required),
		validation.Field(&request.Text, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
